package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/college-baseball-live/internal/domain/game"
	"github.com/riskibarqy/college-baseball-live/internal/domain/gamedetail"
	"github.com/riskibarqy/college-baseball-live/internal/domain/ranking"
	"github.com/riskibarqy/college-baseball-live/internal/domain/schedule"
	"github.com/riskibarqy/college-baseball-live/internal/domain/standing"
	"github.com/riskibarqy/college-baseball-live/internal/domain/stats"
	"github.com/riskibarqy/college-baseball-live/internal/domain/team"
)

type ScoreboardSource interface {
	Scoreboard(ctx context.Context, date time.Time) ([]game.Game, error)
}

type RankingsSource interface {
	Rankings(ctx context.Context) ([]ranking.RankedTeam, error)
}

type StandingsSource interface {
	Standings(ctx context.Context, season int) ([]standing.ConferenceStandings, error)
	ConferenceMap(ctx context.Context) (standing.ConferenceMap, error)
}

type TeamsSource interface {
	Teams(ctx context.Context) ([]team.Team, error)
}

type ScheduleSource interface {
	TeamSchedule(ctx context.Context, teamID string) (schedule.TeamSchedule, error)
}

type SummarySource interface {
	Summary(ctx context.Context, eventID string) (gamedetail.Summary, error)
}

type LeaderboardSource interface {
	Leaderboard(ctx context.Context, q stats.Query) (stats.Leaderboard, error)
}
