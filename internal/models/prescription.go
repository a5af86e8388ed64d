package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Prescription is issued by a doctor for a patient, optionally tied to an
// appointment. Items holds the medication list as JSON:
// [{"drug": "...", "dosage": "...", "frequency": "...", "duration": "..."}].
type Prescription struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DoctorID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentID *uuid.UUID     `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	Items         datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"items"`
	Notes         string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Doctor        Doctor         `gorm:"foreignKey:DoctorID" json:"-"`
	Patient       Patient        `gorm:"foreignKey:PatientID" json:"-"`
}
