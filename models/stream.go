package models

import (
	"time"
)

// Stream is a metered payment pledge from a user to the community wallet.
// Amount fields are decimal strings (USDC with 6 fractional digits) to avoid
// floating-point drift across services.
type Stream struct {
	ID               string     `db:"id" json:"id"`
	UserID           string     `db:"user_id" json:"userId"`
	CommunityAddress string     `db:"community_address" json:"communityAddress"`
	RatePerSecond    string     `db:"rate_per_second" json:"ratePerSecond"`
	TotalAmount      string     `db:"total_amount" json:"totalAmount"`
	StreamedAmount   string     `db:"streamed_amount" json:"streamedAmount"`
	StartTime        time.Time  `db:"start_time" json:"startTime"`
	EndTime          *time.Time `db:"end_time" json:"endTime"`
	IsActive         bool       `db:"is_active" json:"isActive"`
	IsPaused         bool       `db:"is_paused" json:"isPaused"`
	TransactionHash  *string    `db:"transaction_hash" json:"transactionHash"`
	PaymentID        *string    `db:"payment_id" json:"paymentId"`
}

// IsStreaming reports whether the stream counts toward chat access.
// Active-and-unpaused is the single predicate gating the community feed.
func (s *Stream) IsStreaming() bool {
	return s.IsActive && !s.IsPaused
}

// StreamUpdate carries a partial update for a stream. Nil fields are left
// unchanged; the repository merges only the fields that are set.
type StreamUpdate struct {
	StreamedAmount  *string    `json:"streamedAmount"`
	IsActive        *bool      `json:"isActive"`
	IsPaused        *bool      `json:"isPaused"`
	EndTime         *time.Time `json:"endTime"`
	TransactionHash *string    `json:"transactionHash"`
	PaymentID       *string    `json:"paymentId"`
}
