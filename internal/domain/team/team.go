package team

import "errors"

type Member struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `json:"image"`
}

var ErrNotFound = errors.New("team member not found")

type CreateMemberRequest struct {
	Name  string `json:"name" binding:"required"`
	Role  string `json:"role" binding:"required"`
	Image string `json:"image" binding:"required"`
}

type UpdateMemberRequest struct {
	Name  string `json:"name" binding:"required"`
	Role  string `json:"role" binding:"required"`
	Image string `json:"image" binding:"required"`
}
