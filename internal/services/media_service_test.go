package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMediaUploadValidation(t *testing.T) {
	svc := NewMediaService(nil, nil)
	owner := uuid.New()

	tests := []struct {
		name        string
		fileName    string
		contentType string
		size        int64
		wantErr     error
	}{
		{"missing file name", "", "image/png", 100, ErrFileRequired},
		{"oversized file", "scan.png", "image/png", maxUploadBytes + 1, ErrFileTooLarge},
		{"executable rejected", "setup.exe", "application/x-msdownload", 100, ErrUnsupportedType},
		{"svg rejected", "chart.svg", "image/svg+xml", 100, ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(owner, tt.fileName, tt.contentType, tt.size, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMediaListByOwnerRestricted(t *testing.T) {
	svc := NewMediaService(nil, nil)
	owner := uuid.New()
	stranger := uuid.New()

	_, err := svc.ListByOwner(owner, stranger, "PATIENT")
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.ListByOwner(owner, stranger, "DOCTOR")
	assert.ErrorIs(t, err, ErrNotOwner)
}
