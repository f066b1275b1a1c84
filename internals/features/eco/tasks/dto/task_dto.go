package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ecoquest_backend/internals/features/eco/tasks/model"
)

type CreateTaskRequest struct {
	TaskTitle       string `json:"task_title" validate:"required,min=3,max=160"`
	TaskDescription string `json:"task_description" validate:"omitempty,max=5000"`
	TaskCategory    string `json:"task_category" validate:"required,oneof=planting waste energy water"`
	TaskPoints      int    `json:"task_points" validate:"required,min=1,max=10000"`
}

func (r *CreateTaskRequest) Normalize() {
	r.TaskTitle = strings.TrimSpace(r.TaskTitle)
	r.TaskDescription = strings.TrimSpace(r.TaskDescription)
	r.TaskCategory = strings.ToLower(strings.TrimSpace(r.TaskCategory))
}

// PUT: field nil = tidak diubah
type UpdateTaskRequest struct {
	TaskTitle       *string `json:"task_title" validate:"omitempty,min=3,max=160"`
	TaskDescription *string `json:"task_description" validate:"omitempty,max=5000"`
	TaskCategory    *string `json:"task_category" validate:"omitempty,oneof=planting waste energy water"`
	TaskPoints      *int    `json:"task_points" validate:"omitempty,min=1,max=10000"`
}

func (r *UpdateTaskRequest) Normalize() {
	if r.TaskTitle != nil {
		v := strings.TrimSpace(*r.TaskTitle)
		r.TaskTitle = &v
	}
	if r.TaskDescription != nil {
		v := strings.TrimSpace(*r.TaskDescription)
		r.TaskDescription = &v
	}
	if r.TaskCategory != nil {
		v := strings.ToLower(strings.TrimSpace(*r.TaskCategory))
		r.TaskCategory = &v
	}
}

func (r UpdateTaskRequest) ToMap() map[string]interface{} {
	m := map[string]interface{}{}
	if r.TaskTitle != nil {
		m["task_title"] = *r.TaskTitle
	}
	if r.TaskDescription != nil {
		m["task_description"] = *r.TaskDescription
	}
	if r.TaskCategory != nil {
		m["task_category"] = *r.TaskCategory
	}
	if r.TaskPoints != nil {
		m["task_points"] = *r.TaskPoints
	}
	return m
}

type TaskResponse struct {
	TaskID          uuid.UUID  `json:"task_id"`
	TaskTitle       string     `json:"task_title"`
	TaskDescription string     `json:"task_description"`
	TaskCategory    string     `json:"task_category"`
	TaskPoints      int        `json:"task_points"`
	TaskCreatedBy   *uuid.UUID `json:"task_created_by,omitempty"`
	TaskCreatedAt   time.Time  `json:"task_created_at"`
	TaskUpdatedAt   time.Time  `json:"task_updated_at"`
}

func FromModel(m model.TaskModel) TaskResponse {
	return TaskResponse{
		TaskID:          m.TaskID,
		TaskTitle:       m.TaskTitle,
		TaskDescription: m.TaskDescription,
		TaskCategory:    string(m.TaskCategory),
		TaskPoints:      m.TaskPoints,
		TaskCreatedBy:   m.TaskCreatedBy,
		TaskCreatedAt:   m.TaskCreatedAt,
		TaskUpdatedAt:   m.TaskUpdatedAt,
	}
}

func FromModels(rows []model.TaskModel) []TaskResponse {
	out := make([]TaskResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
