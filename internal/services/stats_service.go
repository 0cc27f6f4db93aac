package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yukikurage/academic-hub-api/internal/cache"
	"github.com/yukikurage/academic-hub-api/internal/logger"
	"github.com/yukikurage/academic-hub-api/internal/models"
	"github.com/yukikurage/academic-hub-api/internal/repository"
)

const platformStatsKey = "stats:platform"

// PlatformStats are the public site totals.
type PlatformStats struct {
	TotalPapers   int64 `json:"total_papers"`
	TotalNotes    int64 `json:"total_notes"`
	TotalSyllabus int64 `json:"total_syllabus"`
	TotalUsers    int64 `json:"total_users"`
}

// StatsService computes platform totals, cached in Redis when available.
type StatsService struct {
	resourceRepo repository.ResourceRepository
	userRepo     repository.UserRepository
	cache        *cache.Cache
	ttl          time.Duration
	log          *logger.Logger
}

func NewStatsService(resourceRepo repository.ResourceRepository, userRepo repository.UserRepository, c *cache.Cache, ttl time.Duration, log *logger.Logger) *StatsService {
	return &StatsService{
		resourceRepo: resourceRepo,
		userRepo:     userRepo,
		cache:        c,
		ttl:          ttl,
		log:          log,
	}
}

func (s *StatsService) Get(ctx context.Context) (*PlatformStats, error) {
	var stats PlatformStats
	if s.cache.GetJSON(ctx, platformStatsKey, &stats) {
		return &stats, nil
	}

	counts := map[models.ResourceType]*int64{
		models.ResourceTypePaper:    &stats.TotalPapers,
		models.ResourceTypeNote:     &stats.TotalNotes,
		models.ResourceTypeSyllabus: &stats.TotalSyllabus,
	}
	for resourceType, dst := range counts {
		n, err := s.resourceRepo.Count(ctx, resourceType)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s resources: %w", resourceType, err)
		}
		*dst = n
	}

	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	stats.TotalUsers = users

	if err := s.cache.SetJSON(ctx, platformStatsKey, stats, s.ttl); err != nil {
		s.log.Warn("failed to cache platform stats", "error", err)
	}
	return &stats, nil
}

// Invalidate drops the cached totals.
func (s *StatsService) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, platformStatsKey); err != nil {
		s.log.Warn("failed to invalidate platform stats", "error", err)
	}
}
