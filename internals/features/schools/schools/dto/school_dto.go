package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ecoquest_backend/internals/features/schools/schools/model"
)

type UpsertSchoolRequest struct {
	SchoolName    string  `json:"school_name" validate:"required,min=3,max=160"`
	SchoolCity    *string `json:"school_city" validate:"omitempty,max=100"`
	SchoolAddress *string `json:"school_address" validate:"omitempty,max=1000"`
}

func (r *UpsertSchoolRequest) Normalize() {
	r.SchoolName = strings.TrimSpace(r.SchoolName)
	r.SchoolCity = trimPtr(r.SchoolCity)
	r.SchoolAddress = trimPtr(r.SchoolAddress)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

type SchoolResponse struct {
	SchoolID        uuid.UUID `json:"school_id"`
	SchoolName      string    `json:"school_name"`
	SchoolCity      *string   `json:"school_city,omitempty"`
	SchoolAddress   *string   `json:"school_address,omitempty"`
	SchoolCreatedAt time.Time `json:"school_created_at"`
}

func FromModel(m model.SchoolModel) SchoolResponse {
	return SchoolResponse{
		SchoolID:        m.SchoolID,
		SchoolName:      m.SchoolName,
		SchoolCity:      m.SchoolCity,
		SchoolAddress:   m.SchoolAddress,
		SchoolCreatedAt: m.SchoolCreatedAt,
	}
}

func FromModels(rows []model.SchoolModel) []SchoolResponse {
	out := make([]SchoolResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
