package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolhub_backend/middleware"
	"schoolhub_backend/models"
)

type GradeHandler struct {
	db            *sql.DB
	notifications Notifications
}

func NewGradeHandler(database *sql.DB, notifications Notifications) *GradeHandler {
	return &GradeHandler{db: database, notifications: notifications}
}

func (h *GradeHandler) CreateGrade(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.CreateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var courseName string
	err := h.db.QueryRowContext(c.Request.Context(),
		`SELECT name FROM courses WHERE id = $1`, req.CourseID).Scan(&courseName)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}
	if err != nil {
		log.Printf("Error verifying course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify course"})
		return
	}

	var grade models.Grade
	err = h.db.QueryRowContext(c.Request.Context(), `
        INSERT INTO grades (student_id, course_id, points, comment, graded_by)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, student_id, course_id, points, COALESCE(comment, ''), graded_by, created_at
    `, req.StudentID, req.CourseID, req.Points, req.Comment, user.ID).Scan(
		&grade.ID, &grade.StudentID, &grade.CourseID, &grade.Points,
		&grade.Comment, &grade.GradedBy, &grade.CreatedAt,
	)
	if err != nil {
		log.Printf("Error creating grade: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create grade"})
		return
	}

	notify(c.Request.Context(), h.notifications, grade.StudentID, "grade",
		fmt.Sprintf("You received %d points in %s", grade.Points, courseName), nil)

	c.JSON(http.StatusCreated, grade)
}

// GetStudentPoints lists the caller's own grades, newest first. Empty list,
// not null, when there are none.
func (h *GradeHandler) GetStudentPoints(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	rows, err := h.db.QueryContext(c.Request.Context(), `
        SELECT g.id, g.student_id, g.course_id, c.name, g.points, COALESCE(g.comment, ''), g.graded_by, g.created_at
        FROM grades g
        JOIN courses c ON c.id = g.course_id
        WHERE g.student_id = $1
        ORDER BY g.created_at DESC
    `, user.ID)
	if err != nil {
		log.Printf("Error fetching grades for student %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch grades"})
		return
	}
	defer rows.Close()

	grades := []models.Grade{}
	for rows.Next() {
		var grade models.Grade
		if err := rows.Scan(&grade.ID, &grade.StudentID, &grade.CourseID, &grade.CourseName,
			&grade.Points, &grade.Comment, &grade.GradedBy, &grade.CreatedAt); err != nil {
			log.Printf("Error scanning grade row: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan grades"})
			return
		}
		grades = append(grades, grade)
	}

	c.JSON(http.StatusOK, grades)
}
