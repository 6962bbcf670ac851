package service

import (
	"context"
	"time"

	"streamgate/events"
	"streamgate/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by id; (nil, nil) if absent
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByAddress retrieves a user by wallet address, case-insensitively
	GetByAddress(ctx context.Context, address string) (*models.User, error)

	// Create inserts a new user with a lowercased address
	Create(ctx context.Context, address string, username *string) (*models.User, error)

	// Update applies a partial update; (nil, nil) if the id is absent
	Update(ctx context.Context, id string, updates *models.UserUpdate) (*models.User, error)
}

// StreamRepository defines the interface for payment stream data access
type StreamRepository interface {
	// GetByID retrieves a stream by id; (nil, nil) if absent
	GetByID(ctx context.Context, id string) (*models.Stream, error)

	// GetByUser returns all streams owned by a user, newest first
	GetByUser(ctx context.Context, userID string) ([]*models.Stream, error)

	// GetActive returns all active-and-unpaused streams
	GetActive(ctx context.Context) ([]*models.Stream, error)

	// Create inserts a new stream with defaults applied
	Create(ctx context.Context, userID, communityAddress, ratePerSecond, totalAmount string, endTime *time.Time, transactionHash, paymentID *string) (*models.Stream, error)

	// Update applies a partial update; (nil, nil) if the id is absent
	Update(ctx context.Context, id string, updates *models.StreamUpdate) (*models.Stream, error)
}

// MessageRepository defines the interface for chat message data access
type MessageRepository interface {
	// Create inserts a new immutable message
	Create(ctx context.Context, userID, content string, messageType models.MessageType, metadata map[string]any) (*models.Message, error)

	// GetRecentWithAuthors returns the newest messages joined with authors
	GetRecentWithAuthors(ctx context.Context, limit int) ([]*models.MessageWithUser, error)
}

// StatsRepository defines the interface for the community stats singleton
type StatsRepository interface {
	// Get returns the stats row, lazily creating it on first read
	Get(ctx context.Context) (*models.CommunityStats, error)

	// Recompute rederives the aggregates from user and stream state
	Recompute(ctx context.Context) (*models.CommunityStats, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// PaymentStatus is the settlement state reported by the payment provider
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// PaymentResult is the provider's response to a payment initiation
type PaymentResult struct {
	ID     string
	Status PaymentStatus
}

// PaymentProvider is the narrow contract with the external payment network.
// The core never imports a payment SDK directly; the provider is injected
// into the stream creation path.
type PaymentProvider interface {
	// InitiatePayment starts a payment of amount (decimal string) to destination
	InitiatePayment(ctx context.Context, amount, destination string) (*PaymentResult, error)

	// CheckStatus returns the settlement state of a previously initiated payment
	CheckStatus(ctx context.Context, paymentID string) (PaymentStatus, error)
}

// UserService defines the interface for user operations
type UserService interface {
	// GetOrCreateByAddress returns the user for a wallet address, creating one
	// on first connect
	GetOrCreateByAddress(ctx context.Context, address string) (*models.User, error)

	// GetUser retrieves a user by id
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// CreateStreamInput carries the caller-supplied fields for a new stream
type CreateStreamInput struct {
	UserID           string
	CommunityAddress string
	RatePerSecond    string
	TotalAmount      string
	EndTime          *time.Time
	TransactionHash  *string
	PaymentID        *string
}

// StreamService defines the interface for payment stream lifecycle operations
type StreamService interface {
	// CreateStream validates and persists a new stream, then recomputes stats
	CreateStream(ctx context.Context, in CreateStreamInput) (*models.Stream, error)

	// UpdateStream applies a partial update and recomputes stats
	UpdateStream(ctx context.Context, id string, updates *models.StreamUpdate) (*models.Stream, error)

	// SetPaused pauses or resumes a stream
	SetPaused(ctx context.Context, id string, paused bool) (*models.Stream, error)

	// RecordProgress sets the streamed amount to a caller-supplied value
	RecordProgress(ctx context.Context, id string, streamedAmount string) (*models.Stream, error)

	// GetStreamsByUser returns all streams owned by a user
	GetStreamsByUser(ctx context.Context, userID string) ([]*models.Stream, error)
}

// AccessService derives chat permissions from a user's current stream set
type AccessService interface {
	// HasAccess reports whether the user owns at least one active-and-unpaused
	// stream
	HasAccess(ctx context.Context, userID string) (bool, error)

	// ActiveStreams returns the user's streams that count toward access
	ActiveStreams(ctx context.Context, userID string) ([]*models.Stream, error)
}

// MessageService defines the interface for the community feed
type MessageService interface {
	// PostMessage stores a message and announces it to subscribers. User
	// messages require chat access.
	PostMessage(ctx context.Context, userID, content string, messageType models.MessageType) (*models.MessageWithUser, error)

	// RecentMessages returns the newest messages joined with authors
	RecentMessages(ctx context.Context, limit int) ([]*models.MessageWithUser, error)
}

// StatsService defines the interface for community statistics reads
type StatsService interface {
	// GetCommunityStats returns the aggregate row, creating it if absent
	GetCommunityStats(ctx context.Context) (*models.CommunityStats, error)
}
