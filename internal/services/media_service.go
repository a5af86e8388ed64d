package services

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/clinichq/clinic-backend/internal/dto"
	"github.com/clinichq/clinic-backend/internal/models"
	"github.com/clinichq/clinic-backend/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxUploadBytes = 10 << 20 // 10 MiB

var (
	ErrMediaNotFound   = errors.New("media not found")
	ErrFileRequired    = errors.New("file is required")
	ErrFileTooLarge    = errors.New("file exceeds the 10 MiB limit")
	ErrUnsupportedType = errors.New("unsupported content type")
)

var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/gif":       true,
	"application/pdf": true,
}

type MediaService struct {
	db    *gorm.DB
	store storage.Storage
}

func NewMediaService(db *gorm.DB, store storage.Storage) *MediaService {
	return &MediaService{db: db, store: store}
}

// Upload stores the blob and records its metadata. The returned public id
// is the only handle clients get.
func (s *MediaService) Upload(ownerID uuid.UUID, fileName, contentType string, size int64, r io.Reader) (*dto.MediaResponse, error) {
	if fileName == "" {
		return nil, ErrFileRequired
	}
	if size > maxUploadBytes {
		return nil, ErrFileTooLarge
	}
	if !allowedContentTypes[strings.ToLower(contentType)] {
		return nil, ErrUnsupportedType
	}

	publicID := strings.ReplaceAll(uuid.New().String(), "-", "")

	path, written, err := s.store.Save(publicID, io.LimitReader(r, maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}
	if written > maxUploadBytes {
		s.store.Delete(publicID)
		return nil, ErrFileTooLarge
	}

	media := models.Media{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		PublicID:    publicID,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   written,
		StoragePath: path,
	}

	if err := s.db.Create(&media).Error; err != nil {
		s.store.Delete(publicID)
		return nil, fmt.Errorf("failed to record media: %w", err)
	}

	resp := toMediaResponse(&media)
	return &resp, nil
}

// Delete removes a blob and its metadata, owner-or-admin only.
func (s *MediaService) Delete(publicID string, callerID uuid.UUID, callerRole models.Role) error {
	var media models.Media
	if err := s.db.Where("public_id = ?", publicID).First(&media).Error; err != nil {
		return ErrMediaNotFound
	}

	if callerRole != models.RoleAdmin && media.OwnerID != callerID {
		return ErrNotOwner
	}

	if err := s.db.Delete(&media).Error; err != nil {
		return fmt.Errorf("failed to delete media record: %w", err)
	}

	// Blob removal is best-effort once the record is gone; an orphaned
	// file is unreachable without its public id.
	if err := s.store.Delete(publicID); err != nil {
		slog.Error("failed to remove media blob", "public_id", publicID, "error", err)
	}
	return nil
}

// ListByOwner returns an owner's uploads. Non-admins may only list their
// own.
func (s *MediaService) ListByOwner(ownerID, callerID uuid.UUID, callerRole models.Role) ([]dto.MediaResponse, error) {
	if callerRole != models.RoleAdmin && ownerID != callerID {
		return nil, ErrNotOwner
	}

	var items []models.Media
	if err := s.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}

	out := make([]dto.MediaResponse, len(items))
	for i := range items {
		out[i] = toMediaResponse(&items[i])
	}
	return out, nil
}

// Open returns the blob for serving, along with its metadata.
func (s *MediaService) Open(publicID string) (*models.Media, io.ReadCloser, error) {
	var media models.Media
	if err := s.db.Where("public_id = ?", publicID).First(&media).Error; err != nil {
		return nil, nil, ErrMediaNotFound
	}

	rc, err := s.store.Open(publicID)
	if err != nil {
		return nil, nil, ErrMediaNotFound
	}
	return &media, rc, nil
}

func toMediaResponse(m *models.Media) dto.MediaResponse {
	return dto.MediaResponse{
		PublicID:    m.PublicID,
		OwnerID:     m.OwnerID,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		URL:         "/api/media/" + m.PublicID,
		CreatedAt:   m.CreatedAt,
	}
}
