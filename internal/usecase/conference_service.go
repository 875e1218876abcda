package usecase

import (
	"context"

	"github.com/riskibarqy/college-baseball-live/internal/domain/game"
	"github.com/riskibarqy/college-baseball-live/internal/domain/standing"
	"github.com/riskibarqy/college-baseball-live/internal/platform/poller"
)

// TeamConferenceService keeps the team to conference lookup built from
// standings. The scoreboard cannot be filtered upstream, so conference
// filters are answered from this map.
type TeamConferenceService struct {
	poller *poller.Poller[standing.ConferenceMap]
}

func NewTeamConferenceService(source StandingsSource, opts Options) *TeamConferenceService {
	opts = opts.normalize()
	p := poller.New[standing.ConferenceMap](opts.pollerOptions("conferences", opts.Intervals.Conferences))
	p.SetFetcher("conferences", func(ctx context.Context) (standing.ConferenceMap, error) {
		ctx, span := startUsecaseSpan(ctx, "usecase.TeamConferenceService.fetch")
		defer span.End()
		return source.ConferenceMap(ctx)
	})
	return &TeamConferenceService{poller: p}
}

func (s *TeamConferenceService) Poller() *poller.Poller[standing.ConferenceMap] {
	return s.poller
}

func (s *TeamConferenceService) current() standing.ConferenceMap {
	snap := s.poller.Snapshot()
	if !snap.HasData {
		return standing.EmptyConferenceMap()
	}
	return snap.Data
}

func (s *TeamConferenceService) Lookup(teamID string) (string, bool) {
	return s.current().Lookup(teamID)
}

func (s *TeamConferenceService) Conferences() []standing.Conference {
	return append([]standing.Conference(nil), s.current().Conferences...)
}

// Matches reports whether either side of g belongs to conferenceID. Teams
// missing from the map fall back to the conference id on the scoreboard row.
func (s *TeamConferenceService) Matches(g game.Game, conferenceID string) bool {
	if conferenceID == "" {
		return true
	}
	m := s.current()
	for _, side := range []game.TeamScore{g.Home, g.Away} {
		id, ok := m.Lookup(side.ID)
		if !ok {
			id = side.ConferenceID
		}
		if id != "" && id == conferenceID {
			return true
		}
	}
	return false
}
