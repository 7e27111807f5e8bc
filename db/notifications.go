package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"schoolhub_backend/models"
)

type NotificationStore struct {
	db        *sql.DB
	retention time.Duration
}

func NewNotificationStore(database *sql.DB, retention time.Duration) *NotificationStore {
	if retention <= 0 {
		retention = models.NotificationRetention
	}
	return &NotificationStore{db: database, retention: retention}
}

// Append writes one notification. Callers treat failures as best-effort:
// log and carry on with their primary operation.
func (s *NotificationStore) Append(ctx context.Context, userID int, ntype, message string, link *string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (user_id, type, message, link)
		VALUES ($1, $2, $3, $4)
	`, userID, ntype, message, link)
	if err != nil {
		return fmt.Errorf("error appending notification: %w", err)
	}
	return nil
}

// MarkRead flips is_read to true for a notification the caller owns. A
// nonexistent id and someone else's notification fail identically with
// ErrNotFound; the single conditional UPDATE never reveals which it was.
func (s *NotificationStore) MarkRead(ctx context.Context, id, callerUserID int) (*models.Notification, error) {
	var n models.Notification
	err := s.db.QueryRowContext(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, type, message, link, is_read, created_at
	`, id, callerUserID).
		Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.Link, &n.IsRead, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error marking notification read: %w", err)
	}
	return &n, nil
}

func (s *NotificationStore) ListUnread(ctx context.Context, userID int) ([]models.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, type, message, link, is_read, created_at
		FROM notifications
		WHERE user_id = $1 AND NOT is_read
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing unread notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.Link, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// SweepExpired deletes notifications older than the retention horizon,
// measured from now. Idempotent; safe to run alongside live writes since the
// cutoff is snapshotted once per call.
func (s *NotificationStore) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-s.retention)
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM notifications WHERE created_at < $1
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error sweeping notifications: %w", err)
	}
	return result.RowsAffected()
}
