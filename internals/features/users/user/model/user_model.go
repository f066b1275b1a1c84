package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleTeacher UserRole = "teacher"
	UserRoleAdmin   UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleStudent, UserRoleTeacher, UserRoleAdmin:
		return true
	}
	return false
}

// Progress per lesson, disimpan di kolom JSON user_lesson_progress
type LessonProgress struct {
	Progress    int        `json:"progress"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type UserModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	UserEmail    string    `gorm:"size:255;not null;uniqueIndex;column:user_email" json:"user_email"`
	UserName     string    `gorm:"size:100;not null;column:user_name" json:"user_name"`
	UserPassword *string   `gorm:"column:user_password" json:"-"`
	UserGoogleID *string   `gorm:"size:255;uniqueIndex;column:user_google_id" json:"-"`
	UserRole     UserRole  `gorm:"type:varchar(16);not null;default:'student';column:user_role" json:"user_role"`

	// Relasi ke sekolah lewat NAMA (bukan id)
	UserSchool *string `gorm:"size:160;index;column:user_school" json:"user_school,omitempty"`

	// Reward state
	UserEcoPoints int                         `gorm:"not null;default:0;column:user_eco_points" json:"user_eco_points"`
	UserBadges    datatypes.JSONSlice[string] `gorm:"column:user_badges" json:"user_badges"`
	UserStreak    int                         `gorm:"not null;default:0;column:user_streak" json:"user_streak"`

	// Lesson state
	UserCompletedLessons datatypes.JSONSlice[string]                   `gorm:"column:user_completed_lessons" json:"user_completed_lessons"`
	UserLessonProgress   datatypes.JSONType[map[string]LessonProgress] `gorm:"column:user_lesson_progress" json:"user_lesson_progress"`

	UserIsActive  bool      `gorm:"not null;default:true;column:user_is_active" json:"user_is_active"`
	UserCreatedAt time.Time `gorm:"autoCreateTime;column:user_created_at" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"autoUpdateTime;column:user_updated_at" json:"user_updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	u.UserEmail = strings.ToLower(strings.TrimSpace(u.UserEmail))
	if u.UserRole == "" {
		u.UserRole = UserRoleStudent
	}
	if u.UserBadges == nil {
		u.UserBadges = datatypes.JSONSlice[string]{}
	}
	if u.UserCompletedLessons == nil {
		u.UserCompletedLessons = datatypes.JSONSlice[string]{}
	}
	if u.UserLessonProgress.Data() == nil {
		u.UserLessonProgress = datatypes.NewJSONType(map[string]LessonProgress{})
	}
	return nil
}

/* =========================
   Badge helpers
========================= */

func (u UserModel) HasBadge(name string) bool {
	for _, b := range u.UserBadges {
		if b == name {
			return true
		}
	}
	return false
}

// AddBadge return true kalau badge baru ditambahkan
func (u *UserModel) AddBadge(name string) bool {
	if u.HasBadge(name) {
		return false
	}
	u.UserBadges = append(u.UserBadges, name)
	return true
}

// RemoveBadge return true kalau badge memang ada dan dihapus
func (u *UserModel) RemoveBadge(name string) bool {
	out := make(datatypes.JSONSlice[string], 0, len(u.UserBadges))
	removed := false
	for _, b := range u.UserBadges {
		if b == name {
			removed = true
			continue
		}
		out = append(out, b)
	}
	u.UserBadges = out
	return removed
}

/* =========================
   Lesson helpers
========================= */

func (u UserModel) HasCompletedLesson(lessonID string) bool {
	for _, l := range u.UserCompletedLessons {
		if l == lessonID {
			return true
		}
	}
	return false
}

// LessonProgressMap selalu return map non-nil (copy), aman untuk dimodifikasi
func (u UserModel) LessonProgressMap() map[string]LessonProgress {
	src := u.UserLessonProgress.Data()
	out := make(map[string]LessonProgress, len(src)+1)
	for k, v := range src {
		out[k] = v
	}
	return out
}
