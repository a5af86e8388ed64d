package services

import (
	"errors"
	"fmt"

	"github.com/clinichq/clinic-backend/internal/dto"
	"github.com/clinichq/clinic-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrNotOwner            = errors.New("caller does not own this resource")
	ErrProfileExists       = errors.New("user already has a doctor profile")
	ErrSpecializationEmpty = errors.New("specialization is required")
)

type DoctorService struct {
	db *gorm.DB
}

func NewDoctorService(db *gorm.DB) *DoctorService {
	return &DoctorService{db: db}
}

// Create links a new doctor profile to an existing user and promotes that
// user to the DOCTOR role. Admin-only (enforced by the route table).
func (s *DoctorService) Create(req *dto.CreateDoctorRequest) (*models.Doctor, error) {
	if req.Specialization == "" {
		return nil, ErrSpecializationEmpty
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", req.UserID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	var existing models.Doctor
	if err := s.db.Where("user_id = ?", req.UserID).First(&existing).Error; err == nil {
		return nil, ErrProfileExists
	}

	doctor := models.Doctor{
		ID:              uuid.New(),
		UserID:          req.UserID,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
		Biography:       req.Biography,
	}
	if len(req.Availability) > 0 {
		doctor.Availability = datatypes.JSON(req.Availability)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&doctor).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("role", models.RoleDoctor).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create doctor profile: %w", err)
	}

	return &doctor, nil
}

func (s *DoctorService) List() ([]models.Doctor, error) {
	var doctors []models.Doctor
	if err := s.db.Order("created_at DESC").Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (s *DoctorService) Get(id uuid.UUID) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := s.db.First(&doctor, "id = ?", id).Error; err != nil {
		return nil, ErrDoctorNotFound
	}
	return &doctor, nil
}

// Update patches a doctor profile. Admins may update any profile; a
// doctor only their own. The ownership check happens before any write.
func (s *DoctorService) Update(id, callerID uuid.UUID, callerRole models.Role, req *dto.UpdateDoctorRequest) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := s.db.First(&doctor, "id = ?", id).Error; err != nil {
		return nil, ErrDoctorNotFound
	}

	if callerRole != models.RoleAdmin && doctor.UserID != callerID {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{}
	if req.Specialization != nil {
		if *req.Specialization == "" {
			return nil, ErrSpecializationEmpty
		}
		updates["specialization"] = *req.Specialization
	}
	if req.ExperienceYears != nil {
		updates["experience_years"] = *req.ExperienceYears
	}
	if req.Biography != nil {
		updates["biography"] = *req.Biography
	}
	if len(req.Availability) > 0 {
		updates["availability"] = datatypes.JSON(req.Availability)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&doctor).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update doctor profile: %w", err)
		}
	}

	return &doctor, nil
}

// Delete removes a doctor profile. Admin-only; the owning user account
// stays, demoted back to PATIENT.
func (s *DoctorService) Delete(id uuid.UUID) error {
	var doctor models.Doctor
	if err := s.db.First(&doctor, "id = ?", id).Error; err != nil {
		return ErrDoctorNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&doctor).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", doctor.UserID).
			Update("role", models.RolePatient).Error
	})
}
