package services

import (
	"testing"
	"time"

	"github.com/clinichq/clinic-backend/internal/dto"
	"github.com/clinichq/clinic-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAppointmentCreateTimeValidation(t *testing.T) {
	svc := NewAppointmentService(nil, nil)
	future := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name     string
		startsAt string
		endsAt   string
		wantErr  error
	}{
		{"not RFC 3339", "tomorrow at noon", future.Format(time.RFC3339), ErrInvalidTimeFormat},
		{"start in the past", time.Now().Add(-time.Hour).Format(time.RFC3339), future.Format(time.RFC3339), ErrInvalidTimeRange},
		{"end before start", future.Add(time.Hour).Format(time.RFC3339), future.Format(time.RFC3339), ErrInvalidTimeRange},
		{"zero-length slot", future.Format(time.RFC3339), future.Format(time.RFC3339), ErrInvalidTimeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(uuid.New(), &dto.CreateAppointmentRequest{
				DoctorID: uuid.New(),
				StartsAt: tt.startsAt,
				EndsAt:   tt.endsAt,
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStatusAllowed(t *testing.T) {
	tests := []struct {
		role   models.Role
		status string
		want   bool
	}{
		{models.RoleAdmin, models.AppointmentScheduled, true},
		{models.RoleAdmin, models.AppointmentCancelled, true},
		{models.RoleDoctor, models.AppointmentConfirmed, true},
		{models.RoleDoctor, models.AppointmentCompleted, true},
		{models.RoleDoctor, models.AppointmentCancelled, true},
		{models.RoleDoctor, models.AppointmentScheduled, false},
		{models.RolePatient, models.AppointmentCancelled, true},
		{models.RolePatient, models.AppointmentConfirmed, false},
		{models.RolePatient, models.AppointmentCompleted, false},
		{"", models.AppointmentCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+" "+tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, statusAllowed(tt.role, tt.status))
		})
	}
}
