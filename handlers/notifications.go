package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"schoolhub_backend/db"
	"schoolhub_backend/middleware"
	"schoolhub_backend/models"
)

// Notifications is the store contract for per-user notification state.
type Notifications interface {
	Append(ctx context.Context, userID int, ntype, message string, link *string) error
	MarkRead(ctx context.Context, id, callerUserID int) (*models.Notification, error)
	ListUnread(ctx context.Context, userID int) ([]models.Notification, error)
}

type NotificationsHandler struct {
	store Notifications
}

func NewNotificationsHandler(store Notifications) *NotificationsHandler {
	return &NotificationsHandler{store: store}
}

func (h *NotificationsHandler) ListUnread(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	notifications, err := h.store.ListUnread(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing notifications for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkRead flips a notification the caller owns to read. A foreign
// notification and a nonexistent one both answer 404; the response never
// reveals which.
func (h *NotificationsHandler) MarkRead(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	notification, err := h.store.MarkRead(c.Request.Context(), id, user.ID)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	if err != nil {
		log.Printf("Error marking notification %d read: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, notification)
}

// notify appends a notification without letting a failure abort the caller's
// primary operation. The write is best-effort on purpose.
func notify(ctx context.Context, store Notifications, userID int, ntype, message string, link *string) {
	if store == nil {
		return
	}
	if err := store.Append(ctx, userID, ntype, message, link); err != nil {
		log.Printf("Error appending %s notification for user %d: %v", ntype, userID, err)
	}
}
