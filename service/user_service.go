package service

import (
	"context"
	"fmt"
	"strings"

	"streamgate/events"
	"streamgate/models"
)

// userService implements the UserService interface
type userService struct {
	userRepo       UserRepository
	statsRepo      StatsRepository
	eventPublisher EventPublisher
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, statsRepo StatsRepository, eventPublisher EventPublisher) UserService {
	return &userService{
		userRepo:       userRepo,
		statsRepo:      statsRepo,
		eventPublisher: eventPublisher,
	}
}

// GetOrCreateByAddress returns the user for a wallet address, creating one on
// the first lookup miss. Addresses are matched case-insensitively.
func (s *userService) GetOrCreateByAddress(ctx context.Context, address string) (*models.User, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if address == "" {
		return nil, fmt.Errorf("%w: address is required", ErrValidation)
	}

	user, err := s.userRepo.GetByAddress(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if user != nil {
		return user, nil
	}

	// First connect for this wallet. Signature verification is an external
	// collaborator, so the user starts unverified.
	username := defaultUsername(address)
	user, err = s.userRepo.Create(ctx, address, &username)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Membership changed; rederive the community aggregates.
	if _, err := s.statsRepo.Recompute(ctx); err != nil {
		return nil, fmt.Errorf("failed to recompute community stats: %w", err)
	}

	s.eventPublisher.Publish(events.UserCreatedEvent{User: user})

	return user, nil
}

// GetUser retrieves a user by id
func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return user, nil
}

// defaultUsername elides a wallet address into a short display label,
// e.g. "0x742d...e456".
func defaultUsername(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
