package repository

import (
	"context"
	"fmt"

	"streamgate/database"
	"streamgate/models"

	"github.com/google/uuid"
)

// MessageRepository provides data access for chat messages
type MessageRepository struct {
	q queryable
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *database.DB) *MessageRepository {
	return &MessageRepository{q: db.Pool}
}

// Create inserts a new message. Messages are immutable once stored.
func (r *MessageRepository) Create(ctx context.Context, userID, content string, messageType models.MessageType, metadata map[string]any) (*models.Message, error) {
	query := `
		INSERT INTO messages (id, user_id, content, message_type, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, content, message_type, metadata, created_at
	`

	var message models.Message
	err := r.q.QueryRow(ctx, query, uuid.New().String(), userID, content, string(messageType), metadata).Scan(
		&message.ID,
		&message.UserID,
		&message.Content,
		&message.MessageType,
		&message.Metadata,
		&message.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create message for user %s: %w", userID, err)
	}

	return &message, nil
}

// GetRecentWithAuthors returns the newest messages joined with their authors,
// newest first. This is the reconciliation path for polling clients and
// session bootstrap.
func (r *MessageRepository) GetRecentWithAuthors(ctx context.Context, limit int) ([]*models.MessageWithUser, error) {
	query := `
		SELECT
			m.id, m.user_id, m.content, m.message_type, m.metadata, m.created_at,
			u.id, u.address, u.username, u.is_verified, u.created_at
		FROM messages m
		JOIN users u ON u.id = m.user_id
		ORDER BY m.created_at DESC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.MessageWithUser
	for rows.Next() {
		var mwu models.MessageWithUser
		var user models.User
		err := rows.Scan(
			&mwu.ID,
			&mwu.UserID,
			&mwu.Content,
			&mwu.MessageType,
			&mwu.Metadata,
			&mwu.CreatedAt,
			&user.ID,
			&user.Address,
			&user.Username,
			&user.IsVerified,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		mwu.User = &user
		messages = append(messages, &mwu)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return messages, nil
}
