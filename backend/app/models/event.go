package models

import "time"

// Event is a dated attendance record owned by exactly one user. Times are
// kept as strings (HH:MM) and the date as YYYY-MM-DD, matching the wire
// format; event_date carries a secondary index for calendar queries.
type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	EventDate string    `gorm:"size:16;not null;index" json:"event_date"`
	StartTime *string   `gorm:"size:16" json:"start_time"`
	EndTime   *string   `gorm:"size:16" json:"end_time"`
	Type      string    `gorm:"size:64;not null" json:"type"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}
