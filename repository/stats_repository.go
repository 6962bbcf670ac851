package repository

import (
	"context"
	"errors"
	"fmt"

	"streamgate/database"
	"streamgate/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StatsRepository manages the community stats singleton row
type StatsRepository struct {
	q queryable
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *database.DB) *StatsRepository {
	return &StatsRepository{q: db.Pool}
}

const statsColumns = `id, total_members, active_streamers, total_streamed::text, monthly_volume::text, updated_at`

func scanStats(row pgx.Row) (*models.CommunityStats, error) {
	var stats models.CommunityStats
	err := row.Scan(
		&stats.ID,
		&stats.TotalMembers,
		&stats.ActiveStreamers,
		&stats.TotalStreamed,
		&stats.MonthlyVolume,
		&stats.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Get returns the singleton stats row, lazily creating it on first read.
func (r *StatsRepository) Get(ctx context.Context) (*models.CommunityStats, error) {
	query := `SELECT ` + statsColumns + ` FROM community_stats LIMIT 1`

	stats, err := scanStats(r.q.QueryRow(ctx, query))
	if errors.Is(err, pgx.ErrNoRows) {
		return r.insertDefault(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get community stats: %w", err)
	}

	return stats, nil
}

func (r *StatsRepository) insertDefault(ctx context.Context) (*models.CommunityStats, error) {
	query := `
		INSERT INTO community_stats (id, total_members, active_streamers, total_streamed, monthly_volume)
		VALUES ($1, 0, 0, 0, 0)
		RETURNING ` + statsColumns

	stats, err := scanStats(r.q.QueryRow(ctx, query, uuid.New().String()))
	if err != nil {
		return nil, fmt.Errorf("failed to create community stats: %w", err)
	}
	return stats, nil
}

// Recompute rederives the aggregate counters from current user and stream
// state: total members, distinct active-and-unpaused streamers, and the sum of
// streamed amounts across all streams regardless of pause state. The
// externally supplied monthly volume is preserved.
func (r *StatsRepository) Recompute(ctx context.Context) (*models.CommunityStats, error) {
	// Make sure the singleton row exists before updating it.
	if _, err := r.Get(ctx); err != nil {
		return nil, err
	}

	query := `
		UPDATE community_stats SET
			total_members = (SELECT COUNT(*) FROM users),
			active_streamers = (
				SELECT COUNT(DISTINCT user_id) FROM streams
				WHERE is_active AND NOT is_paused
			),
			total_streamed = (SELECT COALESCE(SUM(streamed_amount), 0) FROM streams),
			updated_at = NOW()
		RETURNING ` + statsColumns

	stats, err := scanStats(r.q.QueryRow(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("failed to recompute community stats: %w", err)
	}

	return stats, nil
}
