package dto

import (
	"time"
)

// CreateGoalRequest is the body of POST /learning-goals
type CreateGoalRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description string     `json:"description"`
	TargetDate  *time.Time `json:"target_date"`
	Progress    int        `json:"progress" binding:"min=0,max=100"`
}

// UpdateGoalRequest is the body of PUT /learning-goals/:id; absent fields are left unchanged
type UpdateGoalRequest struct {
	Title           *string    `json:"title" binding:"omitempty,max=255"`
	Description     *string    `json:"description"`
	TargetDate      *time.Time `json:"target_date"`
	ClearTargetDate bool       `json:"clear_target_date"`
	Progress        *int       `json:"progress" binding:"omitempty,min=0,max=100"`
	Completed       *bool      `json:"completed"`
}
