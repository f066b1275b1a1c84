package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ecoquest_backend/internals/features/users/user/model"
)

/* ===================== REQUEST ===================== */

// POST /api/a/users: create, atau replace kalau user_id sudah ada
type UpsertUserRequest struct {
	UserID    string   `json:"user_id" validate:"omitempty,uuid"`
	Email     string   `json:"email" validate:"required,email,max=255"`
	Name      string   `json:"name" validate:"required,min=2,max=100"`
	Role      string   `json:"role" validate:"omitempty,oneof=student teacher admin"`
	School    *string  `json:"school" validate:"omitempty,max=160"`
	Password  *string  `json:"password" validate:"omitempty,min=8,max=72"`
	EcoPoints *int     `json:"eco_points" validate:"omitempty,min=0"`
	Streak    *int     `json:"streak" validate:"omitempty,min=0"`
	Badges    []string `json:"badges" validate:"omitempty,dive,max=60"`
	IsActive  *bool    `json:"is_active"`
}

func (r *UpsertUserRequest) Normalize() {
	r.UserID = strings.TrimSpace(r.UserID)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	if r.School != nil {
		s := strings.TrimSpace(*r.School)
		if s == "" {
			r.School = nil
		} else {
			r.School = &s
		}
	}
}

/* ===================== RESPONSE ===================== */

type UserResponse struct {
	UserID               uuid.UUID                       `json:"user_id"`
	UserEmail            string                          `json:"user_email"`
	UserName             string                          `json:"user_name"`
	UserRole             string                          `json:"user_role"`
	UserSchool           *string                         `json:"user_school,omitempty"`
	UserEcoPoints        int                             `json:"user_eco_points"`
	UserBadges           []string                        `json:"user_badges"`
	UserStreak           int                             `json:"user_streak"`
	UserCompletedLessons []string                        `json:"user_completed_lessons"`
	UserLessonProgress   map[string]model.LessonProgress `json:"user_lesson_progress"`
	UserIsActive         bool                            `json:"user_is_active"`
	UserCreatedAt        time.Time                       `json:"user_created_at"`
}

func FromModel(u model.UserModel) UserResponse {
	badges := []string(u.UserBadges)
	if badges == nil {
		badges = []string{}
	}
	lessons := []string(u.UserCompletedLessons)
	if lessons == nil {
		lessons = []string{}
	}
	return UserResponse{
		UserID:               u.UserID,
		UserEmail:            u.UserEmail,
		UserName:             u.UserName,
		UserRole:             string(u.UserRole),
		UserSchool:           u.UserSchool,
		UserEcoPoints:        u.UserEcoPoints,
		UserBadges:           badges,
		UserStreak:           u.UserStreak,
		UserCompletedLessons: lessons,
		UserLessonProgress:   u.LessonProgressMap(),
		UserIsActive:         u.UserIsActive,
		UserCreatedAt:        u.UserCreatedAt,
	}
}

func FromModels(rows []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

type LeaderboardEntry struct {
	Rank          int       `json:"rank"`
	UserID        uuid.UUID `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserSchool    *string   `json:"user_school,omitempty"`
	UserEcoPoints int       `json:"user_eco_points"`
	UserBadges    []string  `json:"user_badges"`
	UserStreak    int       `json:"user_streak"`
}
