package models

import "time"

type CreateCourseRequest struct {
	Name      string `json:"name" binding:"required"`
	TeacherID *int   `json:"teacher_id"`
}

type CourseResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	TeacherID   *int      `json:"teacher_id"`
	TeacherName string    `json:"teacher_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
