package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/clinichq/clinic-backend/internal/dto"
	"github.com/clinichq/clinic-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func doctorRow(id, userID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "specialization", "experience_years", "biography", "availability"}).
		AddRow(id.String(), userID.String(), "Cardiology", 7, "", []byte(`{}`))
}

func TestDoctorService_UpdateOwnership(t *testing.T) {
	doctorID := uuid.New()
	ownerID := uuid.New()
	strangerID := uuid.New()
	newBio := "Updated biography"

	tests := []struct {
		name       string
		callerID   uuid.UUID
		callerRole models.Role
		expectSQL  func(sqlmock.Sqlmock)
		wantErr    error
	}{
		{
			name:       "owner may update",
			callerID:   ownerID,
			callerRole: models.RoleDoctor,
			expectSQL: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM "doctors"`).
					WillReturnRows(doctorRow(doctorID, ownerID))
				mock.ExpectExec(`UPDATE "doctors" SET`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:       "admin may update any profile",
			callerID:   strangerID,
			callerRole: models.RoleAdmin,
			expectSQL: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM "doctors"`).
					WillReturnRows(doctorRow(doctorID, ownerID))
				mock.ExpectExec(`UPDATE "doctors" SET`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:       "other doctor is rejected before any write",
			callerID:   strangerID,
			callerRole: models.RoleDoctor,
			expectSQL: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM "doctors"`).
					WillReturnRows(doctorRow(doctorID, ownerID))
			},
			wantErr: ErrNotOwner,
		},
		{
			name:       "patient is rejected before any write",
			callerID:   strangerID,
			callerRole: models.RolePatient,
			expectSQL: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM "doctors"`).
					WillReturnRows(doctorRow(doctorID, ownerID))
			},
			wantErr: ErrNotOwner,
		},
		{
			name:       "missing profile",
			callerID:   ownerID,
			callerRole: models.RoleDoctor,
			expectSQL: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM "doctors"`).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			wantErr: ErrDoctorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			tt.expectSQL(mock)

			svc := NewDoctorService(db)
			doctor, err := svc.Update(doctorID, tt.callerID, tt.callerRole, &dto.UpdateDoctorRequest{
				Biography: &newBio,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, doctor)
			} else {
				require.NoError(t, err)
				require.NotNil(t, doctor)
				assert.Equal(t, ownerID, doctor.UserID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDoctorService_UpdateValidatesSpecialization(t *testing.T) {
	db, mock := setupMockDB(t)
	doctorID := uuid.New()
	ownerID := uuid.New()
	empty := ""

	mock.ExpectQuery(`SELECT \* FROM "doctors"`).
		WillReturnRows(doctorRow(doctorID, ownerID))

	svc := NewDoctorService(db)
	_, err := svc.Update(doctorID, ownerID, models.RoleDoctor, &dto.UpdateDoctorRequest{
		Specialization: &empty,
	})

	assert.ErrorIs(t, err, ErrSpecializationEmpty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorService_UpdateWithNoFieldsSkipsWrite(t *testing.T) {
	db, mock := setupMockDB(t)
	doctorID := uuid.New()
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "doctors"`).
		WillReturnRows(doctorRow(doctorID, ownerID))

	svc := NewDoctorService(db)
	doctor, err := svc.Update(doctorID, ownerID, models.RoleDoctor, &dto.UpdateDoctorRequest{})

	require.NoError(t, err)
	assert.Equal(t, "Cardiology", doctor.Specialization)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorService_CreateRequiresSpecialization(t *testing.T) {
	svc := NewDoctorService(nil)
	_, err := svc.Create(&dto.CreateDoctorRequest{UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrSpecializationEmpty)
}

func TestDoctorService_GetNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "doctors"`).
		WillReturnError(gorm.ErrRecordNotFound)

	svc := NewDoctorService(db)
	_, err := svc.Get(uuid.New())
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}
