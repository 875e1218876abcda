package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/college-baseball-live/internal/domain/standing"
	"github.com/riskibarqy/college-baseball-live/internal/platform/poller"
)

const preferredConferenceAbbreviation = "SEC"

// Standings is one standings load. Season is 0 for the current season or the
// previous year when the current one had no rows yet.
type Standings struct {
	Conferences []standing.ConferenceStandings
	Season      int
	IsFallback  bool
}

// StandingsView pairs the standings with the conference the consumer has
// selected.
type StandingsView struct {
	Standings
	SelectedConferenceID string
	Selected             *standing.ConferenceStandings
	IsLoading            bool
	Err                  error
}

type StandingsService struct {
	poller *poller.Poller[Standings]
	prefs  *PreferenceService
}

func NewStandingsService(source StandingsSource, prefs *PreferenceService, opts Options) *StandingsService {
	opts = opts.normalize()
	p := poller.New[Standings](opts.pollerOptions("standings", opts.Intervals.Standings))
	p.SetFetcher("standings", func(ctx context.Context) (Standings, error) {
		ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.fetch")
		defer span.End()
		return loadStandings(ctx, source, opts.Now().In(opts.Location).Year())
	})
	return &StandingsService{poller: p, prefs: prefs}
}

// loadStandings tries the current season and falls back exactly once to the
// previous year when the current one is empty. An empty fallback is returned
// as is.
func loadStandings(ctx context.Context, source StandingsSource, currentYear int) (Standings, error) {
	current, err := source.Standings(ctx, 0)
	if err != nil {
		return Standings{}, fmt.Errorf("load current standings: %w", err)
	}
	if !standing.IsEmpty(current) {
		return Standings{Conferences: current}, nil
	}

	previousYear := currentYear - 1
	fallback, err := source.Standings(ctx, previousYear)
	if err != nil {
		return Standings{}, fmt.Errorf("load standings season=%d: %w", previousYear, err)
	}
	return Standings{Conferences: fallback, Season: previousYear, IsFallback: true}, nil
}

func (s *StandingsService) Poller() *poller.Poller[Standings] {
	return s.poller
}

// View waits for the first load and resolves the selected conference. Without
// a remembered selection it picks the SEC, else the first conference by name, and
// remembers that choice.
func (s *StandingsService) View(ctx context.Context) (StandingsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.View")
	defer span.End()

	if err := s.poller.WaitLoaded(ctx); err != nil {
		return StandingsView{}, err
	}
	snap := s.poller.Snapshot()
	view := StandingsView{Standings: snap.Data, IsLoading: snap.IsLoading, Err: snap.Err}
	if len(view.Conferences) == 0 {
		return view, nil
	}

	selected := s.prefs.StandingsConference()
	if selected == "" {
		selected = defaultConference(view.Conferences)
		s.prefs.SetStandingsConference(ctx, selected)
	}
	view.SelectedConferenceID = selected
	if found, ok := standing.Find(view.Conferences, selected); ok {
		view.Selected = &found
	}
	return view, nil
}

func (s *StandingsService) SelectConference(ctx context.Context, conferenceID string) string {
	return s.prefs.SetStandingsConference(ctx, conferenceID)
}

func defaultConference(items []standing.ConferenceStandings) string {
	for _, item := range items {
		if item.ConferenceAbbreviation == preferredConferenceAbbreviation {
			return item.ConferenceID
		}
	}
	first := items[0]
	for _, item := range items[1:] {
		if strings.ToLower(item.ConferenceName) < strings.ToLower(first.ConferenceName) {
			first = item
		}
	}
	return first.ConferenceID
}
