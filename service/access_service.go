package service

import (
	"context"
	"fmt"

	"streamgate/models"
)

// accessService implements the AccessService interface. Access is recomputed
// from current stream state on every call; there is no caching.
type accessService struct {
	streamRepo StreamRepository
}

// NewAccessService creates a new access service
func NewAccessService(streamRepo StreamRepository) AccessService {
	return &accessService{streamRepo: streamRepo}
}

// HasAccess reports whether the user owns at least one stream that is active
// and not paused.
func (s *accessService) HasAccess(ctx context.Context, userID string) (bool, error) {
	streams, err := s.ActiveStreams(ctx, userID)
	if err != nil {
		return false, err
	}
	return len(streams) > 0, nil
}

// ActiveStreams returns the user's streams that count toward access
func (s *accessService) ActiveStreams(ctx context.Context, userID string) ([]*models.Stream, error) {
	streams, err := s.streamRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get streams for access check: %w", err)
	}

	active := make([]*models.Stream, 0, len(streams))
	for _, stream := range streams {
		if stream.IsStreaming() {
			active = append(active, stream)
		}
	}
	return active, nil
}
