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

func TestAdminService_DeleteUserCascades(t *testing.T) {
	db, mock := setupMockDB(t)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRow(userID, "gone@clinic.test", "hash", models.RoleDoctor))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "refresh_tokens"`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "comments"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "media"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "doctors"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "patients"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE "users" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := NewAdminService(db)
	require.NoError(t, svc.DeleteUser(userID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminService_DeleteUserNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnError(gorm.ErrRecordNotFound)

	svc := NewAdminService(db)
	err := svc.DeleteUser(uuid.New())

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminService_AssignRole(t *testing.T) {
	t.Run("rejects unknown role", func(t *testing.T) {
		svc := NewAdminService(nil)
		_, err := svc.AssignRole(&dto.AssignRoleRequest{UserID: uuid.New(), Role: "SUPERUSER"})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("promotes a patient to doctor", func(t *testing.T) {
		db, mock := setupMockDB(t)
		userID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(userRow(userID, "p@clinic.test", "hash", models.RolePatient))
		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		svc := NewAdminService(db)
		resp, err := svc.AssignRole(&dto.AssignRoleRequest{UserID: userID, Role: models.RoleDoctor})

		require.NoError(t, err)
		assert.Equal(t, models.RoleDoctor, resp.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		wantPage     int
		wantPageSize int
	}{
		{"defaults applied", 0, 0, 1, 20},
		{"negative page clamped", -3, 10, 1, 10},
		{"oversized page size reset", 2, 500, 2, 20},
		{"valid values kept", 3, 50, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size := normalizePage(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, size)
		})
	}
}
