package models

import "time"

// AttendanceSession is a time-boxed staff check-in window. Its id is handed
// out as a scannable code; staff redeem it at most once per session.
type AttendanceSession struct {
	ID          string    `json:"id"`
	CreatedBy   int       `json:"created_by"`
	SessionDate time.Time `json:"session_date"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the session window has closed. Expiry is the only
// state transition a session ever makes.
func (s AttendanceSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// EndOfDay returns 23:59:59.999 on the calendar day of t, in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}

type StaffAttendance struct {
	ID          int       `json:"id"`
	SessionID   string    `json:"session_id"`
	UserID      int       `json:"user_id"`
	CheckInTime time.Time `json:"check_in_time"`
}

type CheckInRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

type MarkAttendanceRequest struct {
	CourseID  int    `json:"course_id" binding:"required"`
	StudentID int    `json:"student_id" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=present absent late excused"`
	Date      string `json:"date"` // YYYY-MM-DD, defaults to today
}

type CourseAttendance struct {
	ID        int       `json:"id"`
	CourseID  int       `json:"course_id"`
	StudentID int       `json:"student_id"`
	Status    string    `json:"status"`
	Date      time.Time `json:"date"`
	MarkedBy  int       `json:"marked_by"`
	CreatedAt time.Time `json:"created_at"`
}
