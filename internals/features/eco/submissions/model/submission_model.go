package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// pending → approved | rejected (terminal)
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

type SubmissionModel struct {
	SubmissionID        uuid.UUID `gorm:"type:uuid;primaryKey;column:submission_id" json:"submission_id"`
	SubmissionTaskID    uuid.UUID `gorm:"type:uuid;not null;index;column:submission_task_id" json:"submission_task_id"`
	SubmissionStudentID uuid.UUID `gorm:"type:uuid;not null;index;column:submission_student_id" json:"submission_student_id"`

	SubmissionEvidence    string  `gorm:"type:text;not null;column:submission_evidence" json:"submission_evidence"`
	SubmissionLocation    string  `gorm:"size:255;not null;column:submission_location" json:"submission_location"`
	SubmissionDescription *string `gorm:"type:text;column:submission_description" json:"submission_description,omitempty"`

	SubmissionStatus SubmissionStatus `gorm:"type:varchar(16);not null;default:'pending';index;column:submission_status" json:"submission_status"`

	// skor "verifikasi" simulasi (70..99), hanya untuk tampilan
	SubmissionMLConfidence int `gorm:"not null;default:0;column:submission_ml_confidence" json:"submission_ml_confidence"`

	SubmissionSubmittedAt time.Time  `gorm:"not null;column:submission_submitted_at" json:"submission_submitted_at"`
	SubmissionReviewedAt  *time.Time `gorm:"column:submission_reviewed_at" json:"submission_reviewed_at,omitempty"`
	SubmissionReviewedBy  *uuid.UUID `gorm:"type:uuid;column:submission_reviewed_by" json:"submission_reviewed_by,omitempty"`
	SubmissionComments    *string    `gorm:"type:text;column:submission_comments" json:"submission_comments,omitempty"`

	SubmissionCreatedAt time.Time `gorm:"autoCreateTime;column:submission_created_at" json:"submission_created_at"`
	SubmissionUpdatedAt time.Time `gorm:"autoUpdateTime;column:submission_updated_at" json:"submission_updated_at"`
}

func (SubmissionModel) TableName() string { return "submissions" }

func (s *SubmissionModel) BeforeCreate(tx *gorm.DB) error {
	if s.SubmissionID == uuid.Nil {
		s.SubmissionID = uuid.New()
	}
	if s.SubmissionStatus == "" {
		s.SubmissionStatus = SubmissionStatusPending
	}
	if s.SubmissionSubmittedAt.IsZero() {
		s.SubmissionSubmittedAt = time.Now().UTC()
	}
	return nil
}
