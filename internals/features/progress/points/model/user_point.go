package model

import (
	"time"

	"github.com/google/uuid"
)

// Sumber mutasi poin
const (
	SourceSubmissionApproved = 1
	SourceSubmissionReversed = 2
	SourceLessonCompleted    = 3
)

// Ledger mutasi poin. Reversal ditulis sebagai baris negatif, bukan menghapus baris lama.
type UserPointLog struct {
	UserPointLogID         uint      `gorm:"column:user_point_log_id;primaryKey" json:"user_point_log_id"`
	UserPointLogUserID     uuid.UUID `gorm:"column:user_point_log_user_id;type:uuid;not null;index" json:"user_point_log_user_id"`
	UserPointLogPoints     int       `gorm:"column:user_point_log_points;not null" json:"user_point_log_points"`
	UserPointLogSourceType int       `gorm:"column:user_point_log_source_type;not null" json:"user_point_log_source_type"`
	UserPointLogSourceRef  string    `gorm:"column:user_point_log_source_ref;size:64" json:"user_point_log_source_ref"`
	UserPointLogBalance    int       `gorm:"column:user_point_log_balance;not null;default:0" json:"user_point_log_balance"`
	CreatedAt              time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserPointLog) TableName() string {
	return "user_point_logs"
}
