package models

import (
	"time"

	"github.com/google/uuid"
)

// Media is an uploaded file. PublicID is the stable handle clients use to
// reference or delete the file; StoragePath is the location on disk and is
// never exposed.
type Media struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	PublicID    string    `gorm:"size:64;not null;uniqueIndex" json:"public_id"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	StoragePath string    `gorm:"size:500;not null" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	Owner       User      `gorm:"foreignKey:OwnerID" json:"-"`
}
