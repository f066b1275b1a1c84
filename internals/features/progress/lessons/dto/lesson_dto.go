package dto

import (
	"time"

	userModel "ecoquest_backend/internals/features/users/user/model"
)

// POST /api/u/lessons
type CompleteLessonRequest struct {
	UserID   string `json:"user_id" validate:"omitempty,uuid"`
	LessonID string `json:"lesson_id" validate:"required,max=100"`
	Points   int    `json:"points" validate:"min=0,max=1000"`
}

type CompleteLessonResponse struct {
	LessonID         string                   `json:"lesson_id"`
	PointsAwarded    int                      `json:"points_awarded"`
	AlreadyCompleted bool                     `json:"already_completed"`
	EcoPoints        int                      `json:"eco_points"`
	Progress         userModel.LessonProgress `json:"progress"`
	CompletedAt      time.Time                `json:"completed_at"`
}
