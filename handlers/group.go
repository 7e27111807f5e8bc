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

type GroupHandler struct {
	db *sql.DB
}

func NewGroupHandler(database *sql.DB) *GroupHandler {
	return &GroupHandler{db: database}
}

func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req models.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var group models.Group
	err := h.db.QueryRowContext(c.Request.Context(), `
        INSERT INTO groups (name)
        VALUES ($1)
        RETURNING id, name, created_at
    `, req.Name).Scan(&group.ID, &group.Name, &group.CreatedAt)
	if err != nil {
		log.Printf("Error creating group: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, group)
}

// AddMember enrolls a user into a group. Re-adding an existing member is a
// no-op; the unique pair constraint makes repeats converge.
func (h *GroupHandler) AddMember(c *gin.Context) {
	groupID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var req models.AddGroupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var exists bool
	err = h.db.QueryRowContext(c.Request.Context(),
		`SELECT EXISTS (SELECT 1 FROM groups WHERE id = $1)`, groupID).Scan(&exists)
	if err != nil {
		log.Printf("Error verifying group: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify group"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	_, err = h.db.ExecContext(c.Request.Context(), `
        INSERT INTO group_members (group_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT (group_id, user_id) DO NOTHING
    `, groupID, req.UserID)
	if err != nil {
		log.Printf("Error adding group member: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member added"})
}

// GetGroups lists the caller's groups; admins and study office see all.
func (h *GroupHandler) GetGroups(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	query := `
        SELECT g.id, g.name, g.created_at
        FROM groups g
        JOIN group_members gm ON gm.group_id = g.id
        WHERE gm.user_id = $1
        ORDER BY g.name
    `
	params := []interface{}{user.ID}
	if user.Role == models.RoleAdmin || user.Role == models.RoleStudyOffice {
		query = `SELECT id, name, created_at FROM groups ORDER BY name`
		params = nil
	}

	rows, err := h.db.QueryContext(c.Request.Context(), query, params...)
	if err != nil {
		log.Printf("Error fetching groups: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedAt); err != nil {
			log.Printf("Error scanning group row: %v", err)
			continue
		}
		groups = append(groups, group)
	}
	if err = rows.Err(); err != nil {
		log.Printf("Error iterating group rows: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	c.JSON(http.StatusOK, groups)
}
