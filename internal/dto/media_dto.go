package dto

import (
	"time"

	"github.com/google/uuid"
)

type MediaResponse struct {
	PublicID    string    `json:"public_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}
