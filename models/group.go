package models

import "time"

type Group struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

type AddGroupMemberRequest struct {
	UserID int `json:"user_id" binding:"required"`
}
