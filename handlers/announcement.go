package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"schoolhub_backend/middleware"
	"schoolhub_backend/models"
)

type AnnouncementHandler struct {
	db *sql.DB
}

func NewAnnouncementHandler(database *sql.DB) *AnnouncementHandler {
	return &AnnouncementHandler{db: database}
}

func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var announcement models.AnnouncementResponse
	err := h.db.QueryRowContext(c.Request.Context(), `
        INSERT INTO announcements (title, body, created_by)
        VALUES ($1, $2, $3)
        RETURNING id, title, body, created_by, created_at
    `, req.Title, req.Body, user.ID).Scan(
		&announcement.ID, &announcement.Title, &announcement.Body,
		&announcement.CreatedBy, &announcement.CreatedAt,
	)
	if err != nil {
		log.Printf("Error creating announcement: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create announcement"})
		return
	}

	c.JSON(http.StatusCreated, announcement)
}

// GetAnnouncements lists everything, newest first, with a per-caller viewed
// flag.
func (h *AnnouncementHandler) GetAnnouncements(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	rows, err := h.db.QueryContext(c.Request.Context(), `
        SELECT
            a.id,
            a.title,
            a.body,
            a.created_by,
            u.first_name || ' ' || u.last_name,
            av.id IS NOT NULL,
            a.created_at
        FROM announcements a
        JOIN users u ON u.id = a.created_by
        LEFT JOIN announcement_views av ON av.announcement_id = a.id AND av.user_id = $1
        ORDER BY a.created_at DESC
    `, user.ID)
	if err != nil {
		log.Printf("Error fetching announcements: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch announcements"})
		return
	}
	defer rows.Close()

	announcements := []models.AnnouncementResponse{}
	for rows.Next() {
		var a models.AnnouncementResponse
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.CreatedBy, &a.Author, &a.Viewed, &a.CreatedAt); err != nil {
			log.Printf("Error scanning announcement row: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan announcements"})
			return
		}
		announcements = append(announcements, a)
	}

	c.JSON(http.StatusOK, announcements)
}

// MarkViewed records that the caller saw an announcement. Repeat views are
// deduplicated by the unique pair constraint and answer the same 200.
func (h *AnnouncementHandler) MarkViewed(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	var exists bool
	err = h.db.QueryRowContext(c.Request.Context(),
		`SELECT EXISTS (SELECT 1 FROM announcements WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		log.Printf("Error verifying announcement: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify announcement"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	_, err = h.db.ExecContext(c.Request.Context(), `
        INSERT INTO announcement_views (announcement_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT (announcement_id, user_id) DO NOTHING
    `, id, user.ID)
	if err != nil {
		log.Printf("Error recording announcement view: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record view"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Marked as viewed"})
}
