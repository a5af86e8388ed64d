package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/clinichq/clinic-backend/internal/config"
	"github.com/clinichq/clinic-backend/internal/dto"
	"github.com/clinichq/clinic-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "unit-test-secret",
		JWTAccessExpiry:    15 * time.Minute,
		RefreshTokenExpiry: 30 * 24 * time.Hour,
	}
}

func userRow(id uuid.UUID, email, passwordHash string, role models.Role) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password", "full_name", "role"}).
		AddRow(id.String(), email, passwordHash, "Test User", string(role))
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	userID := uuid.New()

	tests := []struct {
		name      string
		password  string
		setupMock func(sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name:     "unknown email",
			password: "correct-horse",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM "users"`).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			password: "wrong-horse",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM "users"`).
					WillReturnRows(userRow(userID, "p@clinic.test", string(hash), models.RolePatient))
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			tt.setupMock(mock)

			svc := NewAuthService(db, testConfig())
			resp, raw, err := svc.Login(&dto.LoginRequest{Email: "p@clinic.test", Password: tt.password})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, resp)
			assert.Empty(t, raw)
			// A failed login must not touch the refresh token table.
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAuthService_RefreshRejectsBadTokens(t *testing.T) {
	svc := NewAuthService(nil, testConfig())
	resp, raw, err := svc.Refresh("")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, resp)
	assert.Empty(t, raw)
}

func TestAuthService_RefreshUnknownToken(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "refresh_tokens"`).
		WillReturnError(gorm.ErrRecordNotFound)

	svc := NewAuthService(db, testConfig())
	_, _, err := svc.Refresh("no-such-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_RefreshExpiredTokenIsRevoked(t *testing.T) {
	db, mock := setupMockDB(t)
	tokenID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "refresh_tokens"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at", "revoked"}).
			AddRow(tokenID.String(), uuid.New().String(), hashToken("stale"), time.Now().Add(-time.Hour), false))
	mock.ExpectExec(`UPDATE "refresh_tokens" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := NewAuthService(db, testConfig())
	_, _, err := svc.Refresh("stale")

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("empty token is a no-op", func(t *testing.T) {
		svc := NewAuthService(nil, testConfig())
		assert.NoError(t, svc.Logout(""))
	})

	t.Run("revokes the presented token", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectExec(`UPDATE "refresh_tokens" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		svc := NewAuthService(db, testConfig())
		assert.NoError(t, svc.Logout("some-live-token"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAuthService_MeNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnError(gorm.ErrRecordNotFound)

	svc := NewAuthService(db, testConfig())
	_, err := svc.Me(uuid.New())

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAccessTokenClaims(t *testing.T) {
	cfg := testConfig()
	svc := NewAuthService(nil, cfg)
	user := &models.User{
		ID:    uuid.New(),
		Email: "d@clinic.test",
		Role:  models.RoleDoctor,
	}

	signed, err := svc.generateAccessToken(user)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		require.IsType(t, &jwt.SigningMethodHMAC{}, token.Method)
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, "DOCTOR", claims["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(cfg.JWTAccessExpiry), exp.Time, 5*time.Second)
}

func TestSanitizeUserOmitsPassword(t *testing.T) {
	user := &models.User{
		ID:       uuid.New(),
		Email:    "a@clinic.test",
		Password: "$2a$10$secret",
		FullName: "Ada",
		Role:     models.RoleAdmin,
	}

	resp := sanitizeUser(user)

	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, user.Email, resp.Email)
	assert.Equal(t, user.FullName, resp.FullName)
	assert.Equal(t, models.RoleAdmin, resp.Role)
}
