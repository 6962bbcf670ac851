package models

import (
	"time"
)

// MessageType classifies chat entries
type MessageType string

const (
	MessageTypeUser         MessageType = "user"
	MessageTypeSystem       MessageType = "system"
	MessageTypeAnnouncement MessageType = "announcement"
)

// Valid reports whether t is one of the known message types.
func (t MessageType) Valid() bool {
	switch t {
	case MessageTypeUser, MessageTypeSystem, MessageTypeAnnouncement:
		return true
	}
	return false
}

// Message is a single immutable chat entry.
type Message struct {
	ID          string         `db:"id" json:"id"`
	UserID      string         `db:"user_id" json:"userId"`
	Content     string         `db:"content" json:"content"`
	MessageType MessageType    `db:"message_type" json:"messageType"`
	Metadata    map[string]any `db:"metadata" json:"metadata"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
}

// MessageWithUser joins a message with its author's public profile, the shape
// delivered to clients on both the push and poll paths.
type MessageWithUser struct {
	Message
	User *User `json:"user"`
}
