package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/clinichq/clinic-backend/internal/dto"
	"github.com/clinichq/clinic-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrItemsRequired        = errors.New("items must be a non-empty JSON array")
)

type PrescriptionService struct {
	db *gorm.DB
}

func NewPrescriptionService(db *gorm.DB) *PrescriptionService {
	return &PrescriptionService{db: db}
}

// Create issues a prescription from the calling doctor to a patient.
// Admins issue on behalf of a doctor only through that doctor's account,
// so the caller must own a doctor profile either way.
func (s *PrescriptionService) Create(callerID uuid.UUID, req *dto.CreatePrescriptionRequest) (*models.Prescription, error) {
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}

	var doctor models.Doctor
	if err := s.db.Where("user_id = ?", callerID).First(&doctor).Error; err != nil {
		return nil, ErrDoctorNotFound
	}

	var patient models.Patient
	if err := s.db.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		return nil, ErrPatientNotFound
	}

	if req.AppointmentID != nil {
		var apt models.Appointment
		if err := s.db.First(&apt, "id = ?", *req.AppointmentID).Error; err != nil {
			return nil, ErrAppointmentNotFound
		}
	}

	p := models.Prescription{
		ID:            uuid.New(),
		DoctorID:      doctor.ID,
		PatientID:     patient.ID,
		AppointmentID: req.AppointmentID,
		Items:         datatypes.JSON(req.Items),
		Notes:         req.Notes,
	}

	if err := s.db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}

	return &p, nil
}

// ListForCaller scopes by role: admins see everything, doctors what they
// issued, patients what was issued to them.
func (s *PrescriptionService) ListForCaller(callerID uuid.UUID, callerRole models.Role) ([]models.Prescription, error) {
	q := s.db.Order("created_at DESC")

	switch callerRole {
	case models.RoleAdmin:
	case models.RoleDoctor:
		q = q.Joins("JOIN doctors ON doctors.id = prescriptions.doctor_id").
			Where("doctors.user_id = ?", callerID)
	case models.RolePatient:
		q = q.Joins("JOIN patients ON patients.id = prescriptions.patient_id").
			Where("patients.user_id = ?", callerID)
	default:
		return nil, ErrNotOwner
	}

	var prescriptions []models.Prescription
	if err := q.Find(&prescriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (s *PrescriptionService) Get(id, callerID uuid.UUID, callerRole models.Role) (*models.Prescription, error) {
	p, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !s.mayRead(p, callerID, callerRole) {
		return nil, ErrNotOwner
	}
	return p, nil
}

// Update patches items or notes, issuing-doctor-or-admin only.
func (s *PrescriptionService) Update(id, callerID uuid.UUID, callerRole models.Role, req *dto.UpdatePrescriptionRequest) (*models.Prescription, error) {
	p, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !s.mayMutate(p, callerID, callerRole) {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{}
	if len(req.Items) > 0 {
		if err := validateItems(req.Items); err != nil {
			return nil, err
		}
		updates["items"] = datatypes.JSON(req.Items)
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(p).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update prescription: %w", err)
		}
	}

	return p, nil
}

func (s *PrescriptionService) Delete(id, callerID uuid.UUID, callerRole models.Role) error {
	p, err := s.load(id)
	if err != nil {
		return err
	}
	if !s.mayMutate(p, callerID, callerRole) {
		return ErrNotOwner
	}
	return s.db.Delete(p).Error
}

func (s *PrescriptionService) load(id uuid.UUID) (*models.Prescription, error) {
	var p models.Prescription
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		return nil, ErrPrescriptionNotFound
	}
	return &p, nil
}

func (s *PrescriptionService) mayMutate(p *models.Prescription, callerID uuid.UUID, callerRole models.Role) bool {
	if callerRole == models.RoleAdmin {
		return true
	}
	var doctor models.Doctor
	if err := s.db.First(&doctor, "id = ?", p.DoctorID).Error; err != nil {
		return false
	}
	return doctor.UserID == callerID
}

func (s *PrescriptionService) mayRead(p *models.Prescription, callerID uuid.UUID, callerRole models.Role) bool {
	if s.mayMutate(p, callerID, callerRole) {
		return true
	}
	var patient models.Patient
	if err := s.db.First(&patient, "id = ?", p.PatientID).Error; err != nil {
		return false
	}
	return patient.UserID == callerID
}

func validateItems(raw json.RawMessage) error {
	if len(raw) == 0 {
		return ErrItemsRequired
	}
	var items []map[string]interface{}
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return ErrItemsRequired
	}
	return nil
}
