package dto

import (
	"github.com/clinichq/clinic-backend/internal/models"
	"github.com/google/uuid"
)

type UpdateUserRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
}

type AssignRoleRequest struct {
	UserID uuid.UUID   `json:"user_id"`
	Role   models.Role `json:"role"`
}

type Paginated[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}
