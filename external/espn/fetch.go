package espn

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/college-baseball-live/internal/domain/game"
	"github.com/riskibarqy/college-baseball-live/internal/domain/gamedetail"
	"github.com/riskibarqy/college-baseball-live/internal/domain/ranking"
	"github.com/riskibarqy/college-baseball-live/internal/domain/schedule"
	"github.com/riskibarqy/college-baseball-live/internal/domain/standing"
	"github.com/riskibarqy/college-baseball-live/internal/domain/team"
	"github.com/riskibarqy/college-baseball-live/internal/platform/dates"
	"github.com/riskibarqy/college-baseball-live/internal/usecase"
)

// Scoreboard returns the games on the calendar day of date, in date's location.
func (c *Client) Scoreboard(ctx context.Context, date time.Time) ([]game.Game, error) {
	day := dates.ToUpstream(date)
	doc, err := c.FetchJSON(ctx, c.endpoints.Scoreboard(day))
	if err != nil {
		return nil, fmt.Errorf("fetch scoreboard date=%s: %w", day, err)
	}
	return TransformScoreboard(doc), nil
}

func (c *Client) Rankings(ctx context.Context) ([]ranking.RankedTeam, error) {
	doc, err := c.FetchJSON(ctx, c.endpoints.Rankings())
	if err != nil {
		return nil, fmt.Errorf("fetch rankings: %w", err)
	}
	return TransformRankings(doc), nil
}

func (c *Client) Teams(ctx context.Context) ([]team.Team, error) {
	doc, err := c.FetchJSON(ctx, c.endpoints.Teams())
	if err != nil {
		return nil, fmt.Errorf("fetch teams: %w", err)
	}
	return TransformTeams(doc), nil
}

// Standings fetches one season; 0 means the current one.
func (c *Client) Standings(ctx context.Context, season int) ([]standing.ConferenceStandings, error) {
	doc, err := c.FetchJSON(ctx, c.endpoints.Standings(season))
	if err != nil {
		return nil, fmt.Errorf("fetch standings season=%d: %w", season, err)
	}
	return TransformStandings(doc), nil
}

func (c *Client) ConferenceMap(ctx context.Context) (standing.ConferenceMap, error) {
	doc, err := c.FetchJSON(ctx, c.endpoints.Standings(0))
	if err != nil {
		return standing.EmptyConferenceMap(), fmt.Errorf("fetch conference map: %w", err)
	}
	return TransformConferenceMap(doc), nil
}

func (c *Client) TeamSchedule(ctx context.Context, teamID string) (schedule.TeamSchedule, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return schedule.TeamSchedule{}, fmt.Errorf("%w: team id is required", usecase.ErrInvalidInput)
	}
	doc, err := c.FetchJSON(ctx, c.endpoints.TeamSchedule(teamID))
	if err != nil {
		return schedule.TeamSchedule{}, fmt.Errorf("fetch schedule team_id=%s: %w", teamID, err)
	}
	return TransformSchedule(doc, teamID), nil
}

func (c *Client) Summary(ctx context.Context, eventID string) (gamedetail.Summary, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return gamedetail.Summary{}, fmt.Errorf("%w: event id is required", usecase.ErrInvalidInput)
	}
	doc, err := c.FetchJSON(ctx, c.endpoints.Summary(eventID))
	if err != nil {
		return gamedetail.Summary{}, fmt.Errorf("fetch summary event_id=%s: %w", eventID, err)
	}
	return TransformSummary(doc, eventID), nil
}
