package authz

import (
	"testing"

	"github.com/clinichq/clinic-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		role   models.Role
		want   bool
	}{
		{"admin lists users", "GET", "/api/admin/users", models.RoleAdmin, true},
		{"doctor cannot list users", "GET", "/api/admin/users", models.RoleDoctor, false},
		{"patient cannot delete user", "DELETE", "/api/admin/users/:id", models.RolePatient, false},
		{"patient books appointment", "POST", "/api/appointments", models.RolePatient, true},
		{"admin books appointment", "POST", "/api/appointments", models.RoleAdmin, true},
		{"doctor cannot book appointment", "POST", "/api/appointments", models.RoleDoctor, false},
		{"doctor patches own profile route", "PATCH", "/api/doctors/:id", models.RoleDoctor, true},
		{"patient cannot patch doctor", "PATCH", "/api/doctors/:id", models.RolePatient, false},
		{"only admin creates doctors", "POST", "/api/doctors", models.RoleDoctor, false},
		{"doctor issues prescription", "POST", "/api/prescriptions", models.RoleDoctor, true},
		{"patient reads prescriptions", "GET", "/api/prescriptions", models.RolePatient, true},
		{"anyone authenticated comments", "POST", "/api/blogs/:id/comments", models.RolePatient, true},
		{"unknown route denied", "GET", "/api/nonexistent", models.RoleAdmin, false},
		{"unknown role denied", "GET", "/api/doctors", models.Role("SUPERUSER"), false},
		{"empty role denied", "GET", "/api/doctors", models.Role(""), false},
		{"method matters", "DELETE", "/api/doctors", models.RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.method, tt.path, tt.role))
		})
	}
}
