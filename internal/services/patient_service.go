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
	ErrPatientNotFound = errors.New("patient not found")
	ErrInvalidDate     = errors.New("date_of_birth must be an RFC 3339 date")
)

type PatientService struct {
	db *gorm.DB
}

func NewPatientService(db *gorm.DB) *PatientService {
	return &PatientService{db: db}
}

func (s *PatientService) List() ([]models.Patient, error) {
	var patients []models.Patient
	if err := s.db.Order("created_at DESC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// Get returns a patient profile. Staff may read any profile; a patient
// only their own.
func (s *PatientService) Get(id, callerID uuid.UUID, callerRole models.Role) (*models.Patient, error) {
	var patient models.Patient
	if err := s.db.First(&patient, "id = ?", id).Error; err != nil {
		return nil, ErrPatientNotFound
	}

	if callerRole == models.RolePatient && patient.UserID != callerID {
		return nil, ErrNotOwner
	}

	return &patient, nil
}

// Update patches a patient profile, owner-or-admin only.
func (s *PatientService) Update(id, callerID uuid.UUID, callerRole models.Role, req *dto.UpdatePatientRequest) (*models.Patient, error) {
	var patient models.Patient
	if err := s.db.First(&patient, "id = ?", id).Error; err != nil {
		return nil, ErrPatientNotFound
	}

	if callerRole != models.RoleAdmin && patient.UserID != callerID {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDate
		}
		updates["date_of_birth"] = dob
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.BloodGroup != nil {
		updates["blood_group"] = *req.BloodGroup
	}

	if len(updates) > 0 {
		if err := s.db.Model(&patient).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update patient profile: %w", err)
		}
	}

	return &patient, nil
}

// profileForUser resolves the patient profile owned by a user id.
func (s *PatientService) profileForUser(userID uuid.UUID) (*models.Patient, error) {
	var patient models.Patient
	if err := s.db.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		return nil, ErrPatientNotFound
	}
	return &patient, nil
}
