package service

import (
	"context"
	"fmt"

	"streamgate/events"
	"streamgate/models"

	log "github.com/sirupsen/logrus"
)

// StreamAnnouncer posts a system message to the feed when a new payment
// stream starts. It subscribes to StreamCreatedEvent on the event bus.
type StreamAnnouncer struct {
	userRepo UserRepository
	messages MessageService
}

// NewStreamAnnouncer creates a new stream announcer
func NewStreamAnnouncer(userRepo UserRepository, messages MessageService) *StreamAnnouncer {
	return &StreamAnnouncer{
		userRepo: userRepo,
		messages: messages,
	}
}

// HandleStreamCreated is an events.Handler for StreamCreatedEvent
func (a *StreamAnnouncer) HandleStreamCreated(ctx context.Context, event events.Event) {
	created, ok := event.(events.StreamCreatedEvent)
	if !ok {
		return
	}

	user, err := a.userRepo.GetByID(ctx, created.Stream.UserID)
	if err != nil || user == nil {
		log.WithFields(log.Fields{
			"userId": created.Stream.UserID,
			"error":  err,
		}).Warn("Failed to resolve stream owner for announcement")
		return
	}

	name := user.Address
	if user.Username != nil && *user.Username != "" {
		name = *user.Username
	}

	content := fmt.Sprintf("%s started streaming to the community", name)
	if _, err := a.messages.PostMessage(ctx, user.ID, content, models.MessageTypeSystem); err != nil {
		log.WithFields(log.Fields{
			"userId": user.ID,
			"error":  err,
		}).Warn("Failed to post stream announcement")
	}
}
