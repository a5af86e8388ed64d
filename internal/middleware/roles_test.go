package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clinichq/clinic-backend/internal/config"
	"github.com/clinichq/clinic-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testApp() *fiber.App {
	cfg := &config.Config{JWTSecret: testSecret, JWTAccessExpiry: time.Hour}

	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }

	app := fiber.New()
	app.Get("/api/admin/users", middleware.JWTProtected(cfg), middleware.RoleGuard(), ok)
	app.Get("/api/doctors", middleware.JWTProtected(cfg), middleware.RoleGuard(), ok)
	app.Patch("/api/doctors/:id", middleware.JWTProtected(cfg), middleware.RoleGuard(), ok)
	app.Get("/api/unlisted", middleware.JWTProtected(cfg), middleware.RoleGuard(), ok)
	return app
}

func signToken(t *testing.T, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(expiresIn).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestGuardChain(t *testing.T) {
	app := testApp()

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{"missing token", "GET", "/api/doctors", "", fiber.StatusUnauthorized},
		{"malformed token", "GET", "/api/doctors", "not-a-jwt", fiber.StatusUnauthorized},
		{"expired token", "GET", "/api/doctors", signToken(t, "PATIENT", -time.Minute), fiber.StatusUnauthorized},
		{"patient denied on admin route", "GET", "/api/admin/users", signToken(t, "PATIENT", time.Hour), fiber.StatusForbidden},
		{"doctor denied on admin route", "GET", "/api/admin/users", signToken(t, "DOCTOR", time.Hour), fiber.StatusForbidden},
		{"admin allowed on admin route", "GET", "/api/admin/users", signToken(t, "ADMIN", time.Hour), fiber.StatusOK},
		{"patient allowed on doctors listing", "GET", "/api/doctors", signToken(t, "PATIENT", time.Hour), fiber.StatusOK},
		{"patient denied on doctor patch", "PATCH", "/api/doctors/abc", signToken(t, "PATIENT", time.Hour), fiber.StatusForbidden},
		{"doctor allowed on doctor patch", "PATCH", "/api/doctors/abc", signToken(t, "DOCTOR", time.Hour), fiber.StatusOK},
		{"unknown role denied", "GET", "/api/doctors", signToken(t, "SUPERUSER", time.Hour), fiber.StatusUnauthorized},
		{"route absent from table denied", "GET", "/api/unlisted", signToken(t, "ADMIN", time.Hour), fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestGetRoleWithoutAuthGuard(t *testing.T) {
	app := fiber.New()
	app.Get("/probe", func(c *fiber.Ctx) error {
		// No JWT middleware ran; the identity must resolve to nothing.
		assert.False(t, middleware.GetRole(c).Valid())
		_, err := middleware.GetUserID(c)
		assert.Error(t, err)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/probe", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRoleGuardStandaloneDenies(t *testing.T) {
	// Role guard without the auth guard: always deny.
	app := fiber.New()
	app.Get("/api/doctors", middleware.RoleGuard(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/doctors", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
