package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/models"
)

type AttendanceStore struct {
	db *sql.DB

	// singlePerDay matches the staff_sessions_date_key index managed by
	// InitSchema. With it set, same-day creates return the existing session.
	singlePerDay bool
}

func NewAttendanceStore(database *sql.DB, singlePerDay bool) *AttendanceStore {
	return &AttendanceStore{db: database, singlePerDay: singlePerDay}
}

// CreateSession opens today's check-in window. The expiry is always the end
// of the creation day, no matter when during the day it is created. The
// second return value reports whether a new session was inserted.
func (s *AttendanceStore) CreateSession(ctx context.Context, createdBy int, now time.Time) (models.AttendanceSession, bool, error) {
	// SessionDate comes back from the RETURNING scan; Postgres derives the
	// date from the timestamp we bind, so local-day semantics live in one
	// place.
	session := models.AttendanceSession{
		ID:        uuid.NewString(),
		CreatedBy: createdBy,
		ExpiresAt: models.EndOfDay(now),
	}

	if s.singlePerDay {
		err := s.db.QueryRowContext(ctx, `
			INSERT INTO staff_attendance_sessions (id, created_by, session_date, expires_at)
			VALUES ($1, $2, $3::date, $4)
			ON CONFLICT (session_date) DO NOTHING
			RETURNING id, session_date, created_at
		`, session.ID, createdBy, now, session.ExpiresAt).
			Scan(&session.ID, &session.SessionDate, &session.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			// Lost the race or the session already existed. Return it.
			existing, err := s.findSessionByDate(ctx, now)
			if err != nil {
				return models.AttendanceSession{}, false, err
			}
			return *existing, false, nil
		}
		if err != nil {
			return models.AttendanceSession{}, false, fmt.Errorf("error creating session: %w", err)
		}
		return session, true, nil
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO staff_attendance_sessions (id, created_by, session_date, expires_at)
		VALUES ($1, $2, $3::date, $4)
		RETURNING id, session_date, created_at
	`, session.ID, createdBy, now, session.ExpiresAt).
		Scan(&session.ID, &session.SessionDate, &session.CreatedAt)
	if err != nil {
		return models.AttendanceSession{}, false, fmt.Errorf("error creating session: %w", err)
	}
	return session, true, nil
}

func (s *AttendanceStore) findSessionByDate(ctx context.Context, day time.Time) (*models.AttendanceSession, error) {
	return s.scanSession(s.db.QueryRowContext(ctx, `
		SELECT id, created_by, session_date, created_at, expires_at
		FROM staff_attendance_sessions WHERE session_date = $1::date
	`, day))
}

func (s *AttendanceStore) GetSession(ctx context.Context, id string) (*models.AttendanceSession, error) {
	return s.scanSession(s.db.QueryRowContext(ctx, `
		SELECT id, created_by, session_date, created_at, expires_at
		FROM staff_attendance_sessions WHERE id = $1
	`, id))
}

func (s *AttendanceStore) scanSession(row *sql.Row) (*models.AttendanceSession, error) {
	var session models.AttendanceSession
	err := row.Scan(&session.ID, &session.CreatedBy, &session.SessionDate,
		&session.CreatedAt, &session.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning session: %w", err)
	}
	return &session, nil
}

// CreateCheckIn records one check-in per (session, user). The unique
// constraint is the arbiter; two concurrent scans for the same pair yield
// exactly one row and one ErrAlreadyCheckedIn.
func (s *AttendanceStore) CreateCheckIn(ctx context.Context, sessionID string, userID int, at time.Time) (*models.StaffAttendance, error) {
	var record models.StaffAttendance
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO staff_attendances (session_id, user_id, check_in_time)
		VALUES ($1, $2, $3)
		RETURNING id, session_id, user_id, check_in_time
	`, sessionID, userID, at).
		Scan(&record.ID, &record.SessionID, &record.UserID, &record.CheckInTime)
	if isUniqueViolation(err) {
		return nil, ErrAlreadyCheckedIn
	}
	if err != nil {
		return nil, fmt.Errorf("error creating check-in: %w", err)
	}
	return &record, nil
}

// ListCheckIns returns check-ins, optionally filtered to one session,
// newest first.
func (s *AttendanceStore) ListCheckIns(ctx context.Context, sessionID string) ([]models.StaffAttendance, error) {
	query := `
		SELECT id, session_id, user_id, check_in_time
		FROM staff_attendances
	`
	params := []interface{}{}
	if sessionID != "" {
		query += " WHERE session_id = $1"
		params = append(params, sessionID)
	}
	query += " ORDER BY check_in_time DESC"

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("error listing check-ins: %w", err)
	}
	defer rows.Close()

	records := []models.StaffAttendance{}
	for rows.Next() {
		var record models.StaffAttendance
		if err := rows.Scan(&record.ID, &record.SessionID, &record.UserID, &record.CheckInTime); err != nil {
			return nil, fmt.Errorf("error scanning check-in row: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
