package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// CreateDoctorRequest links a new doctor profile to an existing user.
type CreateDoctorRequest struct {
	UserID          uuid.UUID       `json:"user_id"`
	Specialization  string          `json:"specialization"`
	ExperienceYears int             `json:"experience_years"`
	Biography       string          `json:"biography"`
	Availability    json.RawMessage `json:"availability"`
}

// UpdateDoctorRequest carries a partial patch; nil fields are left alone.
type UpdateDoctorRequest struct {
	Specialization  *string         `json:"specialization"`
	ExperienceYears *int            `json:"experience_years"`
	Biography       *string         `json:"biography"`
	Availability    json.RawMessage `json:"availability"`
}
