package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolhub_backend/models"
)

type CourseHandler struct {
	db *sql.DB
}

func NewCourseHandler(database *sql.DB) *CourseHandler {
	return &CourseHandler{db: database}
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req models.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var course models.CourseResponse
	err := h.db.QueryRowContext(c.Request.Context(), `
        INSERT INTO courses (name, teacher_id)
        VALUES ($1, $2)
        RETURNING id, name, teacher_id, created_at
    `, req.Name, req.TeacherID).Scan(&course.ID, &course.Name, &course.TeacherID, &course.CreatedAt)

	if err != nil {
		log.Printf("Error creating course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course"})
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) GetCourses(c *gin.Context) {
	rows, err := h.db.QueryContext(c.Request.Context(), `
        SELECT
            c.id,
            c.name,
            c.teacher_id,
            COALESCE(u.first_name || ' ' || u.last_name, ''),
            c.created_at
        FROM courses c
        LEFT JOIN users u ON u.id = c.teacher_id
        ORDER BY c.created_at DESC
    `)
	if err != nil {
		log.Printf("Error fetching courses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courses"})
		return
	}
	defer rows.Close()

	courses := []models.CourseResponse{}
	for rows.Next() {
		var course models.CourseResponse
		if err := rows.Scan(&course.ID, &course.Name, &course.TeacherID, &course.TeacherName, &course.CreatedAt); err != nil {
			log.Printf("Error scanning course row: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan course data"})
			return
		}
		courses = append(courses, course)
	}

	c.JSON(http.StatusOK, courses)
}
