package models

import "time"

type Grade struct {
	ID         int       `json:"id"`
	StudentID  int       `json:"student_id"`
	CourseID   int       `json:"course_id"`
	CourseName string    `json:"course_name,omitempty"`
	Points     int       `json:"points"`
	Comment    string    `json:"comment,omitempty"`
	GradedBy   int       `json:"graded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateGradeRequest struct {
	StudentID int    `json:"student_id" binding:"required"`
	CourseID  int    `json:"course_id" binding:"required"`
	Points    int    `json:"points" binding:"min=0,max=100"`
	Comment   string `json:"comment"`
}
