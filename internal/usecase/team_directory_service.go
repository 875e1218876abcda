package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/college-baseball-live/internal/domain/team"
	"github.com/riskibarqy/college-baseball-live/internal/platform/cache"
)

const (
	defaultDirectoryCacheTTL = 6 * time.Hour
	directoryCacheKey        = "teams"
)

// TeamDirectoryService caches the upstream team directory.
type TeamDirectoryService struct {
	source TeamsSource
	cache  *cache.Store[[]team.Team]
}

func NewTeamDirectoryService(source TeamsSource, ttl time.Duration) *TeamDirectoryService {
	if ttl <= 0 {
		ttl = defaultDirectoryCacheTTL
	}
	return &TeamDirectoryService{
		source: source,
		cache:  cache.NewStore[[]team.Team](ttl),
	}
}

func (s *TeamDirectoryService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamDirectoryService.List")
	defer span.End()

	teams, err := s.cache.GetOrLoad(ctx, directoryCacheKey, s.source.Teams)
	if err != nil {
		return nil, fmt.Errorf("load team directory: %w", err)
	}
	return teams, nil
}

// Search is a case-insensitive match over name, location and abbreviation.
func (s *TeamDirectoryService) Search(ctx context.Context, query string) ([]team.Team, error) {
	teams, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return team.Search(teams, query), nil
}

func (s *TeamDirectoryService) Get(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	teams, err := s.List(ctx)
	if err != nil {
		return team.Team{}, err
	}
	for _, t := range teams {
		if t.ID == teamID {
			return t, nil
		}
	}
	return team.Team{}, fmt.Errorf("%w: team id=%s", ErrNotFound, teamID)
}
