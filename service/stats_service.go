package service

import (
	"context"
	"fmt"

	"streamgate/models"
)

// statsService implements the StatsService interface
type statsService struct {
	statsRepo StatsRepository
}

// NewStatsService creates a new stats service
func NewStatsService(statsRepo StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

// GetCommunityStats returns the aggregate row, lazily creating it on first
// read.
func (s *statsService) GetCommunityStats(ctx context.Context) (*models.CommunityStats, error) {
	stats, err := s.statsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get community stats: %w", err)
	}
	return stats, nil
}
