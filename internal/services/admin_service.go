package services

import (
	"errors"
	"fmt"

	"github.com/clinichq/clinic-backend/internal/dto"
	"github.com/clinichq/clinic-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidRole = errors.New("role must be ADMIN, DOCTOR, or PATIENT")

// AdminService backs the admin panel: user management and cross-entity
// listings. Everything here is already behind the admin allow-list.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) ListUsers(page, pageSize int) (*dto.Paginated[dto.UserResponse], error) {
	page, pageSize = normalizePage(page, pageSize)

	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	if err := s.db.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	items := make([]dto.UserResponse, len(users))
	for i := range users {
		items[i] = sanitizeUser(&users[i])
	}

	return &dto.Paginated[dto.UserResponse]{
		Items: items, Total: total, Page: page, PageSize: pageSize,
	}, nil
}

func (s *AdminService) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Doctor").Preload("Patient").First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}
	user.Password = ""
	return &user, nil
}

func (s *AdminService) UpdateUser(id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}

	updates := map[string]interface{}{}
	if req.Email != nil {
		if *req.Email == "" {
			return nil, errors.New("email cannot be empty")
		}
		var other models.User
		if err := s.db.Where("email = ? AND id <> ?", *req.Email, id).First(&other).Error; err == nil {
			return nil, ErrEmailTaken
		}
		updates["email"] = *req.Email
	}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	resp := sanitizeUser(&user)
	return &resp, nil
}

// DeleteUser removes a user and cascades to their owned doctor or patient
// profile, refresh tokens, comments, and media records.
func (s *AdminService) DeleteUser(id uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return ErrUserNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("user_id = ?", id).Delete(&models.RefreshToken{})
		tx.Where("author_id = ?", id).Delete(&models.Comment{})
		tx.Where("owner_id = ?", id).Delete(&models.Media{})
		tx.Where("user_id = ?", id).Delete(&models.Doctor{})
		tx.Where("user_id = ?", id).Delete(&models.Patient{})
		return tx.Delete(&user).Error
	})
}

// AssignRole sets a user's role. Demoting a doctor leaves the doctor
// profile in place; deleting it is a separate admin action.
func (s *AdminService) AssignRole(req *dto.AssignRoleRequest) (*dto.UserResponse, error) {
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", req.UserID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.db.Model(&user).Update("role", req.Role).Error; err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}
	user.Role = req.Role

	resp := sanitizeUser(&user)
	return &resp, nil
}

func (s *AdminService) ListAppointments(page, pageSize int) (*dto.Paginated[models.Appointment], error) {
	return listPaginated[models.Appointment](s.db, page, pageSize, "starts_at DESC")
}

func (s *AdminService) ListPrescriptions(page, pageSize int) (*dto.Paginated[models.Prescription], error) {
	return listPaginated[models.Prescription](s.db, page, pageSize, "created_at DESC")
}

func (s *AdminService) ListBlogPosts(page, pageSize int) (*dto.Paginated[models.BlogPost], error) {
	return listPaginated[models.BlogPost](s.db, page, pageSize, "created_at DESC")
}

func (s *AdminService) ListComments(page, pageSize int) (*dto.Paginated[models.Comment], error) {
	return listPaginated[models.Comment](s.db, page, pageSize, "created_at DESC")
}

func listPaginated[T any](db *gorm.DB, page, pageSize int, order string) (*dto.Paginated[T], error) {
	page, pageSize = normalizePage(page, pageSize)

	var model T
	var total int64
	if err := db.Model(&model).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count: %w", err)
	}

	var items []T
	if err := db.Order(order).Limit(pageSize).Offset((page - 1) * pageSize).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list: %w", err)
	}

	return &dto.Paginated[T]{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
