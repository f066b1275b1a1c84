package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskCategory string

const (
	TaskCategoryPlanting TaskCategory = "planting"
	TaskCategoryWaste    TaskCategory = "waste"
	TaskCategoryEnergy   TaskCategory = "energy"
	TaskCategoryWater    TaskCategory = "water"
)

func (c TaskCategory) Valid() bool {
	switch c {
	case TaskCategoryPlanting, TaskCategoryWaste, TaskCategoryEnergy, TaskCategoryWater:
		return true
	}
	return false
}

type TaskModel struct {
	TaskID          uuid.UUID    `gorm:"type:uuid;primaryKey;column:task_id" json:"task_id"`
	TaskTitle       string       `gorm:"size:160;not null;column:task_title" json:"task_title"`
	TaskDescription string       `gorm:"type:text;column:task_description" json:"task_description"`
	TaskCategory    TaskCategory `gorm:"type:varchar(16);not null;index;column:task_category" json:"task_category"`
	TaskPoints      int          `gorm:"not null;column:task_points" json:"task_points"`
	TaskCreatedBy   *uuid.UUID   `gorm:"type:uuid;column:task_created_by" json:"task_created_by,omitempty"`

	TaskCreatedAt time.Time `gorm:"autoCreateTime;column:task_created_at" json:"task_created_at"`
	TaskUpdatedAt time.Time `gorm:"autoUpdateTime;column:task_updated_at" json:"task_updated_at"`
}

func (TaskModel) TableName() string { return "tasks" }

func (t *TaskModel) BeforeCreate(tx *gorm.DB) error {
	if t.TaskID == uuid.Nil {
		t.TaskID = uuid.New()
	}
	return nil
}
