package models

import (
	"time"
)

// User represents a community member identified by their wallet address.
// The address is stored lowercased and is unique.
type User struct {
	ID         string    `db:"id" json:"id"`
	Address    string    `db:"address" json:"address"`
	Username   *string   `db:"username" json:"username"`
	IsVerified bool      `db:"is_verified" json:"isVerified"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// UserUpdate carries a partial update for a user. Nil fields are left
// unchanged.
type UserUpdate struct {
	Username   *string `json:"username"`
	IsVerified *bool   `json:"isVerified"`
}
