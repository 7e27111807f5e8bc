package models

import "time"

// NotificationRetention is how long notifications are kept before the sweep
// deletes them.
const NotificationRetention = 7 * 24 * time.Hour

type Notification struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Link      *string   `json:"link,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
