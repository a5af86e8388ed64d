package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type CreatePrescriptionRequest struct {
	PatientID     uuid.UUID       `json:"patient_id"`
	AppointmentID *uuid.UUID      `json:"appointment_id"`
	Items         json.RawMessage `json:"items"`
	Notes         string          `json:"notes"`
}

type UpdatePrescriptionRequest struct {
	Items json.RawMessage `json:"items"`
	Notes *string         `json:"notes"`
}
