package dto

import (
	"time"

	"github.com/google/uuid"

	"ecoquest_backend/internals/features/eco/image_uploads/model"
)

type ImageUploadResponse struct {
	ImageUploadID           uuid.UUID  `json:"image_upload_id"`
	ImageUploadURL          string     `json:"image_upload_url"`
	ImageUploadFilename     string     `json:"image_upload_filename"`
	ImageUploadSize         int64      `json:"image_upload_size"`
	ImageUploadContentType  string     `json:"image_upload_content_type"`
	ImageUploadUploadedBy   uuid.UUID  `json:"image_upload_uploaded_by"`
	ImageUploadTaskID       *uuid.UUID `json:"image_upload_task_id,omitempty"`
	ImageUploadSubmissionID *uuid.UUID `json:"image_upload_submission_id,omitempty"`
	ImageUploadCreatedAt    time.Time  `json:"image_upload_created_at"`
}

func FromModel(m model.ImageUploadModel) ImageUploadResponse {
	return ImageUploadResponse{
		ImageUploadID:           m.ImageUploadID,
		ImageUploadURL:          m.ImageUploadURL,
		ImageUploadFilename:     m.ImageUploadFilename,
		ImageUploadSize:         m.ImageUploadSize,
		ImageUploadContentType:  m.ImageUploadContentType,
		ImageUploadUploadedBy:   m.ImageUploadUploadedBy,
		ImageUploadTaskID:       m.ImageUploadTaskID,
		ImageUploadSubmissionID: m.ImageUploadSubmissionID,
		ImageUploadCreatedAt:    m.ImageUploadCreatedAt,
	}
}

func FromModels(rows []model.ImageUploadModel) []ImageUploadResponse {
	out := make([]ImageUploadResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
