package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/college-baseball-live/internal/domain/schedule"
	"github.com/riskibarqy/college-baseball-live/internal/platform/cache"
)

const defaultScheduleCacheTTL = 15 * time.Minute

type TeamScheduleView struct {
	Schedule schedule.TeamSchedule
	Filter   schedule.Filter
	Record   schedule.Record
}

// TeamScheduleService serves a single team's season schedule from a TTL cache.
type TeamScheduleService struct {
	source ScheduleSource
	cache  *cache.Store[schedule.TeamSchedule]
}

func NewTeamScheduleService(source ScheduleSource, ttl time.Duration) *TeamScheduleService {
	if ttl <= 0 {
		ttl = defaultScheduleCacheTTL
	}
	return &TeamScheduleService{
		source: source,
		cache:  cache.NewStore[schedule.TeamSchedule](ttl),
	}
}

// Get returns the games matching filter. The record always counts the whole
// season regardless of filter.
func (s *TeamScheduleService) Get(ctx context.Context, teamID string, filter schedule.Filter) (TeamScheduleView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamScheduleService.Get")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return TeamScheduleView{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if filter == "" {
		filter = schedule.FilterAll
	}

	sched, err := s.cache.GetOrLoad(ctx, "schedule:"+teamID, func(ctx context.Context) (schedule.TeamSchedule, error) {
		return s.source.TeamSchedule(ctx, teamID)
	})
	if err != nil {
		return TeamScheduleView{}, fmt.Errorf("load schedule team_id=%s: %w", teamID, err)
	}

	record := schedule.SeasonRecord(sched.Games)
	sched.Games = filter.Apply(sched.Games)
	return TeamScheduleView{Schedule: sched, Filter: filter, Record: record}, nil
}

func (s *TeamScheduleService) Invalidate(ctx context.Context, teamID string) {
	s.cache.Delete(ctx, "schedule:"+strings.TrimSpace(teamID))
}
