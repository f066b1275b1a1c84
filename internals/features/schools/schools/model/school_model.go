package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SchoolModel struct {
	SchoolID      uuid.UUID `gorm:"type:uuid;primaryKey;column:school_id" json:"school_id"`
	SchoolName    string    `gorm:"size:160;not null;uniqueIndex;column:school_name" json:"school_name"`
	SchoolCity    *string   `gorm:"size:100;column:school_city" json:"school_city,omitempty"`
	SchoolAddress *string   `gorm:"type:text;column:school_address" json:"school_address,omitempty"`

	SchoolCreatedAt time.Time `gorm:"autoCreateTime;column:school_created_at" json:"school_created_at"`
	SchoolUpdatedAt time.Time `gorm:"autoUpdateTime;column:school_updated_at" json:"school_updated_at"`
}

func (SchoolModel) TableName() string { return "schools" }

func (s *SchoolModel) BeforeCreate(tx *gorm.DB) error {
	if s.SchoolID == uuid.Nil {
		s.SchoolID = uuid.New()
	}
	return nil
}
