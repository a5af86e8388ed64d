package dto

import "github.com/google/uuid"

type CreateAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	StartsAt string    `json:"starts_at"` // RFC 3339
	EndsAt   string    `json:"ends_at"`   // RFC 3339
	Reason   string    `json:"reason"`
}

type UpdateAppointmentRequest struct {
	StartsAt *string `json:"starts_at"`
	EndsAt   *string `json:"ends_at"`
	Reason   *string `json:"reason"`
	Status   *string `json:"status"`
}
