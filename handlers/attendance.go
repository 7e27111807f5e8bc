package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"schoolhub_backend/middleware"
	"schoolhub_backend/models"
)

type AttendanceHandler struct {
	db *sql.DB
}

func NewAttendanceHandler(database *sql.DB) *AttendanceHandler {
	return &AttendanceHandler{db: database}
}

// MarkAttendance records a student's attendance status for a course on a
// date. Re-marking the same (course, student, date) overwrites the previous
// status in one conditional write, so concurrent marks converge.
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	// Check the student exists and is a student
	var isStudent bool
	err := h.db.QueryRowContext(c.Request.Context(), `
        SELECT EXISTS (
            SELECT 1 FROM users WHERE id = $1 AND role = 'STUDENT'
        )
    `, req.StudentID).Scan(&isStudent)
	if err != nil {
		log.Printf("Error verifying student: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify student"})
		return
	}
	if !isStudent {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	var attendance models.CourseAttendance
	err = h.db.QueryRowContext(c.Request.Context(), `
        INSERT INTO course_attendances (course_id, student_id, status, date, marked_by)
        VALUES ($1, $2, $3, $4::date, $5)
        ON CONFLICT (course_id, student_id, date)
        DO UPDATE SET status = EXCLUDED.status, marked_by = EXCLUDED.marked_by
        RETURNING id, course_id, student_id, status, date, marked_by, created_at
    `, req.CourseID, req.StudentID, req.Status, date, user.ID).Scan(
		&attendance.ID,
		&attendance.CourseID,
		&attendance.StudentID,
		&attendance.Status,
		&attendance.Date,
		&attendance.MarkedBy,
		&attendance.CreatedAt,
	)
	if err != nil {
		log.Printf("Error marking attendance: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark attendance"})
		return
	}

	c.JSON(http.StatusOK, attendance)
}

func (h *AttendanceHandler) GetAttendances(c *gin.Context) {
	query := `
        SELECT id, course_id, student_id, status, date, marked_by, created_at
        FROM course_attendances
    `
	params := []interface{}{}
	if courseID := c.Query("course_id"); courseID != "" {
		id, err := strconv.Atoi(courseID)
		if err != nil {
			// A non-numeric filter matches no course.
			c.JSON(http.StatusOK, []models.CourseAttendance{})
			return
		}
		query += " WHERE course_id = $1"
		params = append(params, id)
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := h.db.QueryContext(c.Request.Context(), query, params...)
	if err != nil {
		log.Printf("Error fetching attendance records: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance records"})
		return
	}
	defer rows.Close()

	attendances, err := scanAttendances(rows)
	if err != nil {
		log.Printf("Error scanning attendance: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan attendance"})
		return
	}

	c.JSON(http.StatusOK, attendances)
}

// GetStudentAttendance lists the caller's own attendance records.
func (h *AttendanceHandler) GetStudentAttendance(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	rows, err := h.db.QueryContext(c.Request.Context(), `
        SELECT id, course_id, student_id, status, date, marked_by, created_at
        FROM course_attendances
        WHERE student_id = $1
        ORDER BY date DESC
    `, user.ID)
	if err != nil {
		log.Printf("Error fetching attendance for student %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance records"})
		return
	}
	defer rows.Close()

	attendances, err := scanAttendances(rows)
	if err != nil {
		log.Printf("Error scanning attendance: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan attendance"})
		return
	}

	c.JSON(http.StatusOK, attendances)
}

func scanAttendances(rows *sql.Rows) ([]models.CourseAttendance, error) {
	attendances := []models.CourseAttendance{}
	for rows.Next() {
		var a models.CourseAttendance
		if err := rows.Scan(&a.ID, &a.CourseID, &a.StudentID, &a.Status, &a.Date, &a.MarkedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		attendances = append(attendances, a)
	}
	return attendances, rows.Err()
}
