package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ecoquest_backend/internals/features/eco/submissions/model"
)

/* ===================== REQUEST ===================== */

// POST /api/u/submissions (JSON). Untuk multipart, evidence diisi dari upload.
type CreateSubmissionRequest struct {
	TaskID      string  `json:"task_id" form:"task_id" validate:"required,uuid"`
	StudentID   string  `json:"student_id" form:"student_id" validate:"omitempty,uuid"`
	Evidence    string  `json:"evidence" form:"evidence"`
	Location    string  `json:"location" form:"location" validate:"required,max=255"`
	Description *string `json:"description" form:"description" validate:"omitempty,max=2000"`
}

func (r *CreateSubmissionRequest) Normalize() {
	r.TaskID = strings.TrimSpace(r.TaskID)
	r.StudentID = strings.TrimSpace(r.StudentID)
	r.Evidence = strings.TrimSpace(r.Evidence)
	r.Location = strings.TrimSpace(r.Location)
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		if d == "" {
			r.Description = nil
		} else {
			r.Description = &d
		}
	}
}

// PATCH /api/t/submissions/:id/review
type ReviewSubmissionRequest struct {
	Status   string  `json:"status" validate:"required,oneof=approved rejected"`
	Comments *string `json:"comments" validate:"omitempty,max=2000"`
}

/* ===================== RESPONSE ===================== */

type SubmissionResponse struct {
	SubmissionID           uuid.UUID  `json:"submission_id"`
	SubmissionTaskID       uuid.UUID  `json:"submission_task_id"`
	SubmissionStudentID    uuid.UUID  `json:"submission_student_id"`
	SubmissionEvidence     string     `json:"submission_evidence"`
	SubmissionLocation     string     `json:"submission_location"`
	SubmissionDescription  *string    `json:"submission_description,omitempty"`
	SubmissionStatus       string     `json:"submission_status"`
	SubmissionMLConfidence int        `json:"submission_ml_confidence"`
	SubmissionSubmittedAt  time.Time  `json:"submission_submitted_at"`
	SubmissionReviewedAt   *time.Time `json:"submission_reviewed_at,omitempty"`
	SubmissionReviewedBy   *uuid.UUID `json:"submission_reviewed_by,omitempty"`
	SubmissionComments     *string    `json:"submission_comments,omitempty"`
}

func FromModel(m model.SubmissionModel) SubmissionResponse {
	return SubmissionResponse{
		SubmissionID:           m.SubmissionID,
		SubmissionTaskID:       m.SubmissionTaskID,
		SubmissionStudentID:    m.SubmissionStudentID,
		SubmissionEvidence:     m.SubmissionEvidence,
		SubmissionLocation:     m.SubmissionLocation,
		SubmissionDescription:  m.SubmissionDescription,
		SubmissionStatus:       string(m.SubmissionStatus),
		SubmissionMLConfidence: m.SubmissionMLConfidence,
		SubmissionSubmittedAt:  m.SubmissionSubmittedAt,
		SubmissionReviewedAt:   m.SubmissionReviewedAt,
		SubmissionReviewedBy:   m.SubmissionReviewedBy,
		SubmissionComments:     m.SubmissionComments,
	}
}

func FromModels(rows []model.SubmissionModel) []SubmissionResponse {
	out := make([]SubmissionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

type ReviewSubmissionResponse struct {
	Submission    SubmissionResponse `json:"submission"`
	PointsAwarded int                `json:"points_awarded"`
	BadgesGranted []string           `json:"badges_granted"`
	// true hanya kalau ada counter global yang benar-benar berubah
	// (energy tidak punya counter; waste < 5 tidak dikurangi).
	GlobalStatsUpdated bool `json:"global_stats_updated"`
}

type DeleteSubmissionResponse struct {
	PointsDeducted int  `json:"points_deducted"`
	StudentUpdated bool `json:"student_updated"`
	// Sama seperti di review: false berarti tidak ada counter yang bergeser,
	// bukan berarti reversal gagal.
	GlobalStatsUpdated bool     `json:"global_stats_updated"`
	BadgesRevoked      []string `json:"badges_revoked"`
	EvidenceDeleted    bool     `json:"evidence_deleted"`
}
