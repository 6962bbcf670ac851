package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"streamgate/database"
	"streamgate/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository provides data access for users
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

const userColumns = `id, address, username, is_verified, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Address,
		&user.Username,
		&user.IsVerified,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by id. Returns (nil, nil) if no user exists.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}

	return user, nil
}

// GetByAddress retrieves a user by wallet address. The lookup is
// case-insensitive; addresses are stored lowercased.
func (r *UserRepository) GetByAddress(ctx context.Context, address string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE address = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, strings.ToLower(address)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by address: %w", err)
	}

	return user, nil
}

// Create inserts a new user. The address is lowercased before storage.
func (r *UserRepository) Create(ctx context.Context, address string, username *string) (*models.User, error) {
	query := `
		INSERT INTO users (id, address, username, is_verified)
		VALUES ($1, $2, $3, false)
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, uuid.New().String(), strings.ToLower(address), username))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Update applies a partial update to a user. Returns (nil, nil) if the id
// does not exist.
func (r *UserRepository) Update(ctx context.Context, id string, updates *models.UserUpdate) (*models.User, error) {
	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)

	if updates.Username != nil {
		args = append(args, *updates.Username)
		sets = append(sets, fmt.Sprintf("username = $%d", len(args)))
	}
	if updates.IsVerified != nil {
		args = append(args, *updates.IsVerified)
		sets = append(sets, fmt.Sprintf("is_verified = $%d", len(args)))
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), userColumns)

	user, err := scanUser(r.q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}

	return user, nil
}
