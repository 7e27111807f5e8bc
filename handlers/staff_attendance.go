package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"schoolhub_backend/db"
	"schoolhub_backend/metrics"
	"schoolhub_backend/middleware"
	"schoolhub_backend/models"
)

// AttendanceSessions is the store contract for the staff check-in flow.
type AttendanceSessions interface {
	CreateSession(ctx context.Context, createdBy int, now time.Time) (models.AttendanceSession, bool, error)
	GetSession(ctx context.Context, id string) (*models.AttendanceSession, error)
	CreateCheckIn(ctx context.Context, sessionID string, userID int, at time.Time) (*models.StaffAttendance, error)
	ListCheckIns(ctx context.Context, sessionID string) ([]models.StaffAttendance, error)
}

type StaffAttendanceHandler struct {
	store AttendanceSessions
}

func NewStaffAttendanceHandler(store AttendanceSessions) *StaffAttendanceHandler {
	return &StaffAttendanceHandler{store: store}
}

// CreateSession opens today's staff check-in window. The session id is what
// gets rendered as a scannable code by the front end. 201 for a new session,
// 200 when single-session mode returns the already-open one.
func (h *StaffAttendanceHandler) CreateSession(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	session, created, err := h.store.CreateSession(c.Request.Context(), user.ID, time.Now())
	if err != nil {
		log.Printf("Error creating attendance session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	c.JSON(status, session)
}

// CheckIn redeems a session id for the calling staff member. Failure kinds
// stay distinguishable: 404 unknown session, 410 window closed, 409 already
// checked in today.
func (h *StaffAttendanceHandler) CheckIn(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Session ids are UUIDs; anything else (a truncated or garbled scan)
	// cannot name a session, and the column cast would reject it anyway.
	if _, err := uuid.Parse(req.SessionID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	session, err := h.store.GetSession(c.Request.Context(), req.SessionID)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		log.Printf("Error fetching session %s: %v", req.SessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify session"})
		return
	}

	if session.Expired(time.Now()) {
		c.JSON(http.StatusGone, gin.H{"error": "Session has expired"})
		return
	}

	record, err := h.store.CreateCheckIn(c.Request.Context(), session.ID, user.ID, time.Now())
	if errors.Is(err, db.ErrAlreadyCheckedIn) {
		c.JSON(http.StatusConflict, gin.H{"error": "Already checked in for this session"})
		return
	}
	if err != nil {
		log.Printf("Error creating check-in: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check in"})
		return
	}

	metrics.StaffCheckIns.Inc()
	c.JSON(http.StatusOK, gin.H{"check_in": record})
}

func (h *StaffAttendanceHandler) ListCheckIns(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID != "" {
		if _, err := uuid.Parse(sessionID); err != nil {
			// A malformed filter matches no session.
			c.JSON(http.StatusOK, []models.StaffAttendance{})
			return
		}
	}

	records, err := h.store.ListCheckIns(c.Request.Context(), sessionID)
	if err != nil {
		log.Printf("Error listing check-ins: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch check-ins"})
		return
	}
	c.JSON(http.StatusOK, records)
}
