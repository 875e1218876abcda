package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/college-baseball-live/internal/domain/schedule"
)

const defaultFavoriteScheduleWorkers = 4

// FavoriteSchedules is the grouped upcoming/recent schedule of every favorite team.
type FavoriteSchedules struct {
	Groups    []schedule.DateGroup
	Games     []schedule.FavoriteGame
	IsLoading bool
	Err       error
	UpdatedAt time.Time
}

// FavoriteSchedulesService joins the season schedules of the favorite teams
// into one day-grouped list.
type FavoriteSchedulesService struct {
	source  ScheduleSource
	workers int
	opts    Options

	mu         sync.RWMutex
	key        string
	generation uint64
	result     FavoriteSchedules
}

func NewFavoriteSchedulesService(source ScheduleSource, workers int, opts Options) *FavoriteSchedulesService {
	if workers <= 0 {
		workers = defaultFavoriteScheduleWorkers
	}
	return &FavoriteSchedulesService{
		source:  source,
		workers: workers,
		opts:    opts.normalize(),
	}
}

type teamScheduleResult struct {
	order    int
	teamID   string
	schedule schedule.TeamSchedule
	err      error
}

// Load fetches schedules for ids. An unchanged id set returns the previous
// result without refetching. A disabled or empty set clears the result.
func (s *FavoriteSchedulesService) Load(ctx context.Context, ids []string, enabled bool) (FavoriteSchedules, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteSchedulesService.Load")
	defer span.End()

	key := schedule.IDsKey(ids)

	s.mu.Lock()
	if !enabled || key == "" {
		s.key = ""
		s.generation++
		s.result = FavoriteSchedules{}
		s.mu.Unlock()
		return FavoriteSchedules{}, nil
	}
	if key == s.key && s.result.Err == nil && !s.result.UpdatedAt.IsZero() {
		out := s.result
		s.mu.Unlock()
		return out, nil
	}
	s.key = key
	s.generation++
	gen := s.generation
	s.result.IsLoading = true
	s.mu.Unlock()

	results := s.fetchAll(ctx, ids)

	schedules := make([]schedule.TeamSchedule, 0, len(results))
	var lastErr error
	for _, r := range results {
		if r.err != nil {
			s.opts.Logger.WarnContext(ctx, "favorite schedule fetch failed", "team_id", r.teamID, "error", r.err)
			lastErr = r.err
			continue
		}
		schedules = append(schedules, r.schedule)
	}

	games := schedule.Dedupe(schedule.Flatten(schedules))
	now := s.opts.Now()
	out := FavoriteSchedules{
		Groups:    schedule.GroupByDay(games, now, s.opts.Location),
		Games:     games,
		UpdatedAt: now,
	}
	if err := ctx.Err(); err != nil {
		out = FavoriteSchedules{Err: err}
	} else if len(schedules) == 0 && lastErr != nil {
		out = FavoriteSchedules{Err: fmt.Errorf("%w: every favorite schedule failed: %v", ErrDependencyUnavailable, lastErr)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		// A newer load started while this one was in flight.
		return out, nil
	}
	if out.Err != nil {
		// Let the next call with the same set retry.
		s.key = ""
	}
	s.result = out
	return out, out.Err
}

func (s *FavoriteSchedulesService) fetchAll(ctx context.Context, ids []string) []teamScheduleResult {
	seen := make(map[string]struct{}, len(ids))
	p := pool.NewWithResults[teamScheduleResult]().WithMaxGoroutines(s.workers)
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		teamID, order := id, len(seen)
		p.Go(func() teamScheduleResult {
			sched, err := s.source.TeamSchedule(ctx, teamID)
			return teamScheduleResult{order: order, teamID: teamID, schedule: sched, err: err}
		})
	}

	// Completion order is arbitrary; keep the caller's order so dedupe is stable.
	results := p.Wait()
	sort.Slice(results, func(i, j int) bool { return results[i].order < results[j].order })
	return results
}

func (s *FavoriteSchedulesService) Snapshot() FavoriteSchedules {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// Invalidate forces the next Load to refetch even for an unchanged set.
func (s *FavoriteSchedulesService) Invalidate() {
	s.mu.Lock()
	s.key = ""
	s.mu.Unlock()
}
