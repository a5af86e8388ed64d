package models

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses. Scheduled appointments move to confirmed or
// cancelled; completed is set by the doctor after the visit.
const (
	AppointmentScheduled = "SCHEDULED"
	AppointmentConfirmed = "CONFIRMED"
	AppointmentCompleted = "COMPLETED"
	AppointmentCancelled = "CANCELLED"
)

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	StartsAt  time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt    time.Time `gorm:"not null" json:"ends_at"`
	Reason    string    `gorm:"size:500" json:"reason,omitempty"`
	Status    string    `gorm:"size:20;not null;default:'SCHEDULED'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Patient   Patient   `gorm:"foreignKey:PatientID" json:"-"`
	Doctor    Doctor    `gorm:"foreignKey:DoctorID" json:"-"`
}
