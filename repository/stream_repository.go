package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"streamgate/database"
	"streamgate/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StreamRepository provides data access for payment streams
type StreamRepository struct {
	q queryable
}

// NewStreamRepository creates a new stream repository
func NewStreamRepository(db *database.DB) *StreamRepository {
	return &StreamRepository{q: db.Pool}
}

// Amount columns are cast to text so decimal strings survive the round trip
// without floating-point conversion.
const streamColumns = `
	id, user_id, community_address,
	rate_per_second::text, total_amount::text, streamed_amount::text,
	start_time, end_time, is_active, is_paused, transaction_hash, payment_id`

func scanStream(row pgx.Row) (*models.Stream, error) {
	var stream models.Stream
	err := row.Scan(
		&stream.ID,
		&stream.UserID,
		&stream.CommunityAddress,
		&stream.RatePerSecond,
		&stream.TotalAmount,
		&stream.StreamedAmount,
		&stream.StartTime,
		&stream.EndTime,
		&stream.IsActive,
		&stream.IsPaused,
		&stream.TransactionHash,
		&stream.PaymentID,
	)
	if err != nil {
		return nil, err
	}
	return &stream, nil
}

func (r *StreamRepository) queryStreams(ctx context.Context, query string, args ...any) ([]*models.Stream, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var streams []*models.Stream
	for rows.Next() {
		stream, err := scanStream(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stream: %w", err)
		}
		streams = append(streams, stream)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate streams: %w", err)
	}

	return streams, nil
}

// GetByID retrieves a stream by id. Returns (nil, nil) if no stream exists.
func (r *StreamRepository) GetByID(ctx context.Context, id string) (*models.Stream, error) {
	query := `SELECT ` + streamColumns + ` FROM streams WHERE id = $1`

	stream, err := scanStream(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stream %s: %w", id, err)
	}

	return stream, nil
}

// GetByUser returns all streams owned by a user, newest first.
func (r *StreamRepository) GetByUser(ctx context.Context, userID string) ([]*models.Stream, error) {
	query := `SELECT ` + streamColumns + ` FROM streams WHERE user_id = $1 ORDER BY start_time DESC`

	streams, err := r.queryStreams(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get streams for user %s: %w", userID, err)
	}
	return streams, nil
}

// GetActive returns all streams that count toward access (active and not
// paused), regardless of owner.
func (r *StreamRepository) GetActive(ctx context.Context) ([]*models.Stream, error) {
	query := `SELECT ` + streamColumns + ` FROM streams WHERE is_active AND NOT is_paused ORDER BY start_time DESC`

	streams, err := r.queryStreams(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active streams: %w", err)
	}
	return streams, nil
}

// Create inserts a new stream with a fresh start time, zero progress, and the
// active-unpaused defaults.
func (r *StreamRepository) Create(ctx context.Context, userID, communityAddress, ratePerSecond, totalAmount string, endTime *time.Time, transactionHash, paymentID *string) (*models.Stream, error) {
	query := `
		INSERT INTO streams (
			id, user_id, community_address, rate_per_second, total_amount,
			streamed_amount, start_time, end_time, is_active, is_paused,
			transaction_hash, payment_id
		)
		VALUES ($1, $2, $3, $4, $5, 0, NOW(), $6, true, false, $7, $8)
		RETURNING ` + streamColumns

	stream, err := scanStream(r.q.QueryRow(ctx, query,
		uuid.New().String(), userID, communityAddress, ratePerSecond, totalAmount,
		endTime, transactionHash, paymentID))
	if err != nil {
		return nil, fmt.Errorf("failed to create stream for user %s: %w", userID, err)
	}

	return stream, nil
}

// Update applies a partial update to a stream. Returns (nil, nil) if the id
// does not exist.
func (r *StreamRepository) Update(ctx context.Context, id string, updates *models.StreamUpdate) (*models.Stream, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if updates.StreamedAmount != nil {
		add("streamed_amount", *updates.StreamedAmount)
	}
	if updates.IsActive != nil {
		add("is_active", *updates.IsActive)
	}
	if updates.IsPaused != nil {
		add("is_paused", *updates.IsPaused)
	}
	if updates.EndTime != nil {
		add("end_time", *updates.EndTime)
	}
	if updates.TransactionHash != nil {
		add("transaction_hash", *updates.TransactionHash)
	}
	if updates.PaymentID != nil {
		add("payment_id", *updates.PaymentID)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE streams SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), streamColumns)

	stream, err := scanStream(r.q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update stream %s: %w", id, err)
	}

	return stream, nil
}
