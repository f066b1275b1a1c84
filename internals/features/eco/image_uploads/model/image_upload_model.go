package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Metadata untuk object yang disimpan di OSS
type ImageUploadModel struct {
	ImageUploadID           uuid.UUID  `gorm:"type:uuid;primaryKey;column:image_upload_id" json:"image_upload_id"`
	ImageUploadURL          string     `gorm:"type:text;not null;index;column:image_upload_url" json:"image_upload_url"`
	ImageUploadObjectKey    string     `gorm:"type:text;not null;column:image_upload_object_key" json:"-"`
	ImageUploadFilename     string     `gorm:"size:255;not null;column:image_upload_filename" json:"image_upload_filename"`
	ImageUploadSize         int64      `gorm:"not null;default:0;column:image_upload_size" json:"image_upload_size"`
	ImageUploadContentType  string     `gorm:"size:100;not null;column:image_upload_content_type" json:"image_upload_content_type"`
	ImageUploadUploadedBy   uuid.UUID  `gorm:"type:uuid;not null;index;column:image_upload_uploaded_by" json:"image_upload_uploaded_by"`
	ImageUploadTaskID       *uuid.UUID `gorm:"type:uuid;column:image_upload_task_id" json:"image_upload_task_id,omitempty"`
	ImageUploadSubmissionID *uuid.UUID `gorm:"type:uuid;index;column:image_upload_submission_id" json:"image_upload_submission_id,omitempty"`
	ImageUploadIsPublic     bool       `gorm:"not null;default:true;column:image_upload_is_public" json:"image_upload_is_public"`

	ImageUploadCreatedAt time.Time `gorm:"autoCreateTime;column:image_upload_created_at" json:"image_upload_created_at"`
}

func (ImageUploadModel) TableName() string { return "image_uploads" }

func (m *ImageUploadModel) BeforeCreate(tx *gorm.DB) error {
	if m.ImageUploadID == uuid.Nil {
		m.ImageUploadID = uuid.New()
	}
	return nil
}
