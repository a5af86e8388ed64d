package models

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the profile owned by a PATIENT user.
type Patient struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Phone       string     `gorm:"size:30" json:"phone,omitempty"`
	Address     string     `gorm:"size:255" json:"address,omitempty"`
	BloodGroup  string     `gorm:"size:5" json:"blood_group,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	User        User       `gorm:"foreignKey:UserID" json:"-"`
}
