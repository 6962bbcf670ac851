package service

import (
	"context"
	"fmt"
	"strings"

	"streamgate/events"
	"streamgate/models"
)

// DefaultMessageLimit is the number of messages returned when the caller does
// not specify one.
const DefaultMessageLimit = 50

// messageService implements the MessageService interface
type messageService struct {
	messageRepo    MessageRepository
	userRepo       UserRepository
	access         AccessService
	eventPublisher EventPublisher
}

// NewMessageService creates a new message service
func NewMessageService(messageRepo MessageRepository, userRepo UserRepository, access AccessService, eventPublisher EventPublisher) MessageService {
	return &messageService{
		messageRepo:    messageRepo,
		userRepo:       userRepo,
		access:         access,
		eventPublisher: eventPublisher,
	}
}

// PostMessage stores a message and publishes it for broadcast. Messages of
// type "user" require the author to hold chat access; system and announcement
// messages bypass the gate.
func (s *messageService) PostMessage(ctx context.Context, userID, content string, messageType models.MessageType) (*models.MessageWithUser, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if messageType == "" {
		messageType = models.MessageTypeUser
	}
	if !messageType.Valid() {
		return nil, fmt.Errorf("%w: unknown message type %q", ErrValidation, messageType)
	}

	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get message author: %w", err)
	}
	if author == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	if messageType == models.MessageTypeUser {
		hasAccess, err := s.access.HasAccess(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to verify access: %w", err)
		}
		if !hasAccess {
			return nil, ErrAccessDenied
		}
	}

	message, err := s.messageRepo.Create(ctx, userID, content, messageType, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	withUser := &models.MessageWithUser{Message: *message, User: author}

	s.eventPublisher.Publish(events.MessageCreatedEvent{Message: withUser})

	return withUser, nil
}

// RecentMessages returns the newest messages joined with their authors,
// newest first. A non-positive limit falls back to the default.
func (s *messageService) RecentMessages(ctx context.Context, limit int) ([]*models.MessageWithUser, error) {
	if limit <= 0 {
		limit = DefaultMessageLimit
	}

	messages, err := s.messageRepo.GetRecentWithAuthors(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent messages: %w", err)
	}
	return messages, nil
}
