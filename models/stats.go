package models

import (
	"time"
)

// CommunityStats is the singleton aggregate row derived from user and stream
// state. MonthlyVolume is supplied externally and never recomputed here.
type CommunityStats struct {
	ID              string    `db:"id" json:"id"`
	TotalMembers    int       `db:"total_members" json:"totalMembers"`
	ActiveStreamers int       `db:"active_streamers" json:"activeStreamers"`
	TotalStreamed   string    `db:"total_streamed" json:"totalStreamed"`
	MonthlyVolume   string    `db:"monthly_volume" json:"monthlyVolume"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}
