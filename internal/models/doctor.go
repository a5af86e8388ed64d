package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Doctor is the clinical profile owned by a DOCTOR user.
// Availability holds the weekly schedule as JSON, e.g.
// {"mon": ["09:00-12:00", "14:00-17:00"]}.
type Doctor struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Specialization  string         `gorm:"size:100;not null;index" json:"specialization"`
	ExperienceYears int            `json:"experience_years"`
	Biography       string         `gorm:"type:text" json:"biography,omitempty"`
	Availability    datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"availability"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	User            User           `gorm:"foreignKey:UserID" json:"-"`
}
