package service

import (
	"context"
	"fmt"

	"streamgate/events"
	"streamgate/models"

	"github.com/shopspring/decimal"
)

// streamService implements the StreamService interface
type streamService struct {
	streamRepo     StreamRepository
	statsRepo      StatsRepository
	eventPublisher EventPublisher
	payments       PaymentProvider // optional, nil when no provider is configured
}

// NewStreamService creates a new stream service. The payment provider may be
// nil, in which case payment correlation ids are stored without verification.
func NewStreamService(streamRepo StreamRepository, statsRepo StatsRepository, eventPublisher EventPublisher, payments PaymentProvider) StreamService {
	return &streamService{
		streamRepo:     streamRepo,
		statsRepo:      statsRepo,
		eventPublisher: eventPublisher,
		payments:       payments,
	}
}

// CreateStream validates the pledge amounts, optionally checks the payment
// with the provider, and persists the stream with streamedAmount zero,
// active and unpaused.
func (s *streamService) CreateStream(ctx context.Context, in CreateStreamInput) (*models.Stream, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if in.CommunityAddress == "" {
		return nil, fmt.Errorf("%w: communityAddress is required", ErrValidation)
	}
	if err := validatePositiveDecimal("ratePerSecond", in.RatePerSecond); err != nil {
		return nil, err
	}
	if err := validatePositiveDecimal("totalAmount", in.TotalAmount); err != nil {
		return nil, err
	}

	if in.PaymentID != nil && s.payments != nil {
		status, err := s.payments.CheckStatus(ctx, *in.PaymentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check payment status: %w", err)
		}
		if status == PaymentStatusFailed {
			return nil, fmt.Errorf("%w: payment %s failed", ErrValidation, *in.PaymentID)
		}
	}

	stream, err := s.streamRepo.Create(ctx, in.UserID, in.CommunityAddress,
		in.RatePerSecond, in.TotalAmount, in.EndTime, in.TransactionHash, in.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream: %w", err)
	}

	// A new active stream changes the active-streamer set.
	if _, err := s.statsRepo.Recompute(ctx); err != nil {
		return nil, fmt.Errorf("failed to recompute community stats: %w", err)
	}

	s.eventPublisher.Publish(events.StreamCreatedEvent{Stream: stream})

	return stream, nil
}

// UpdateStream applies a partial update and rederives the community stats.
// Returns ErrNotFound for an unknown id.
func (s *streamService) UpdateStream(ctx context.Context, id string, updates *models.StreamUpdate) (*models.Stream, error) {
	if updates.StreamedAmount != nil {
		// The caller is the source of truth for progress; any parseable value
		// is accepted, including a decrease.
		if _, err := decimal.NewFromString(*updates.StreamedAmount); err != nil {
			return nil, fmt.Errorf("%w: streamedAmount must be a decimal string", ErrValidation)
		}
	}

	stream, err := s.streamRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update stream: %w", err)
	}
	if stream == nil {
		return nil, fmt.Errorf("stream %s: %w", id, ErrNotFound)
	}

	if _, err := s.statsRepo.Recompute(ctx); err != nil {
		return nil, fmt.Errorf("failed to recompute community stats: %w", err)
	}

	s.eventPublisher.Publish(events.StreamUpdatedEvent{Stream: stream})

	return stream, nil
}

// SetPaused pauses or resumes a stream
func (s *streamService) SetPaused(ctx context.Context, id string, paused bool) (*models.Stream, error) {
	return s.UpdateStream(ctx, id, &models.StreamUpdate{IsPaused: &paused})
}

// RecordProgress sets the streamed amount to a caller-supplied value
func (s *streamService) RecordProgress(ctx context.Context, id string, streamedAmount string) (*models.Stream, error) {
	return s.UpdateStream(ctx, id, &models.StreamUpdate{StreamedAmount: &streamedAmount})
}

// GetStreamsByUser returns all streams owned by a user
func (s *streamService) GetStreamsByUser(ctx context.Context, userID string) ([]*models.Stream, error) {
	streams, err := s.streamRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get streams: %w", err)
	}
	return streams, nil
}

func validatePositiveDecimal(field, value string) error {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return fmt.Errorf("%w: %s must be a decimal string", ErrValidation, field)
	}
	if d.Sign() <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrValidation, field)
	}
	return nil
}
