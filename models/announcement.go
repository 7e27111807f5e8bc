package models

import "time"

type CreateAnnouncementRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

type AnnouncementResponse struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedBy int       `json:"created_by"`
	Author    string    `json:"author,omitempty"`
	Viewed    bool      `json:"viewed"`
	CreatedAt time.Time `json:"created_at"`
}
