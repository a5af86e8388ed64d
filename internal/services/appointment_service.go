package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/clinichq/clinic-backend/internal/dto"
	"github.com/clinichq/clinic-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidTimeRange    = errors.New("starts_at must be in the future and before ends_at")
	ErrInvalidTimeFormat   = errors.New("times must be RFC 3339")
	ErrSlotTaken           = errors.New("doctor already has an appointment in this slot")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrStatusNotAllowed    = errors.New("caller may not set this status")
)

type AppointmentService struct {
	db       *gorm.DB
	patients *PatientService
}

func NewAppointmentService(db *gorm.DB, patients *PatientService) *AppointmentService {
	return &AppointmentService{db: db, patients: patients}
}

// Create books an appointment for the calling patient. Admins book on a
// patient's behalf by calling with that patient's user id.
func (s *AppointmentService) Create(callerID uuid.UUID, req *dto.CreateAppointmentRequest) (*models.Appointment, error) {
	startsAt, err1 := time.Parse(time.RFC3339, req.StartsAt)
	endsAt, err2 := time.Parse(time.RFC3339, req.EndsAt)
	if err1 != nil || err2 != nil {
		return nil, ErrInvalidTimeFormat
	}
	if !startsAt.Before(endsAt) || startsAt.Before(time.Now()) {
		return nil, ErrInvalidTimeRange
	}

	patient, err := s.patients.profileForUser(callerID)
	if err != nil {
		return nil, err
	}

	var doctor models.Doctor
	if err := s.db.First(&doctor, "id = ?", req.DoctorID).Error; err != nil {
		return nil, ErrDoctorNotFound
	}

	var overlapping int64
	s.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND status IN ? AND starts_at < ? AND ends_at > ?",
			doctor.ID, []string{models.AppointmentScheduled, models.AppointmentConfirmed}, endsAt, startsAt).
		Count(&overlapping)
	if overlapping > 0 {
		return nil, ErrSlotTaken
	}

	apt := models.Appointment{
		ID:        uuid.New(),
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Reason:    req.Reason,
		Status:    models.AppointmentScheduled,
	}

	if err := s.db.Create(&apt).Error; err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	return &apt, nil
}

// ListForCaller scopes the listing by role: admins see everything,
// doctors their own schedule, patients their own bookings.
func (s *AppointmentService) ListForCaller(callerID uuid.UUID, callerRole models.Role) ([]models.Appointment, error) {
	q := s.db.Order("starts_at ASC")

	switch callerRole {
	case models.RoleAdmin:
	case models.RoleDoctor:
		q = q.Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
			Where("doctors.user_id = ?", callerID)
	case models.RolePatient:
		q = q.Joins("JOIN patients ON patients.id = appointments.patient_id").
			Where("patients.user_id = ?", callerID)
	default:
		return nil, ErrNotOwner
	}

	var appointments []models.Appointment
	if err := q.Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *AppointmentService) Get(id, callerID uuid.UUID, callerRole models.Role) (*models.Appointment, error) {
	apt, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !s.isParticipant(apt, callerID, callerRole) {
		return nil, ErrNotOwner
	}
	return apt, nil
}

// Update patches times, reason, or status. Status transitions are role
// bound: patients may only cancel their own booking, doctors confirm or
// complete appointments on their schedule, admins set anything.
func (s *AppointmentService) Update(id, callerID uuid.UUID, callerRole models.Role, req *dto.UpdateAppointmentRequest) (*models.Appointment, error) {
	apt, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !s.isParticipant(apt, callerID, callerRole) {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{}

	if req.Status != nil {
		status := *req.Status
		switch status {
		case models.AppointmentScheduled, models.AppointmentConfirmed,
			models.AppointmentCompleted, models.AppointmentCancelled:
		default:
			return nil, ErrInvalidStatus
		}

		if !statusAllowed(callerRole, status) {
			return nil, ErrStatusNotAllowed
		}
		updates["status"] = status
	}

	if req.StartsAt != nil || req.EndsAt != nil {
		startsAt, endsAt := apt.StartsAt, apt.EndsAt
		if req.StartsAt != nil {
			if startsAt, err = time.Parse(time.RFC3339, *req.StartsAt); err != nil {
				return nil, ErrInvalidTimeFormat
			}
		}
		if req.EndsAt != nil {
			if endsAt, err = time.Parse(time.RFC3339, *req.EndsAt); err != nil {
				return nil, ErrInvalidTimeFormat
			}
		}
		if !startsAt.Before(endsAt) {
			return nil, ErrInvalidTimeRange
		}
		updates["starts_at"] = startsAt
		updates["ends_at"] = endsAt
	}

	if req.Reason != nil {
		updates["reason"] = *req.Reason
	}

	if len(updates) > 0 {
		if err := s.db.Model(apt).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update appointment: %w", err)
		}
	}

	return apt, nil
}

func (s *AppointmentService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Appointment{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete appointment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (s *AppointmentService) load(id uuid.UUID) (*models.Appointment, error) {
	var apt models.Appointment
	if err := s.db.First(&apt, "id = ?", id).Error; err != nil {
		return nil, ErrAppointmentNotFound
	}
	return &apt, nil
}

func (s *AppointmentService) isParticipant(apt *models.Appointment, callerID uuid.UUID, callerRole models.Role) bool {
	switch callerRole {
	case models.RoleAdmin:
		return true
	case models.RoleDoctor:
		var doctor models.Doctor
		if err := s.db.First(&doctor, "id = ?", apt.DoctorID).Error; err != nil {
			return false
		}
		return doctor.UserID == callerID
	case models.RolePatient:
		var patient models.Patient
		if err := s.db.First(&patient, "id = ?", apt.PatientID).Error; err != nil {
			return false
		}
		return patient.UserID == callerID
	}
	return false
}

func statusAllowed(role models.Role, status string) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleDoctor:
		return status == models.AppointmentConfirmed || status == models.AppointmentCompleted ||
			status == models.AppointmentCancelled
	case models.RolePatient:
		return status == models.AppointmentCancelled
	}
	return false
}
