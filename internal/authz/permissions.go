package authz

import "github.com/clinichq/clinic-backend/internal/models"

// RoleSet is the set of roles permitted to invoke a route.
type RoleSet map[models.Role]struct{}

func roles(rs ...models.Role) RoleSet {
	set := make(RoleSet, len(rs))
	for _, r := range rs {
		set[r] = struct{}{}
	}
	return set
}

var (
	adminOnly     = roles(models.RoleAdmin)
	staff         = roles(models.RoleAdmin, models.RoleDoctor)
	adminOrOwner  = roles(models.RoleAdmin, models.RolePatient)
	authenticated = roles(models.RoleAdmin, models.RoleDoctor, models.RolePatient)
)

// permissions maps "METHOD <registered route path>" to the roles allowed to
// call it. Routes absent from the table are denied. Ownership narrowing
// (owner-or-admin) happens in the services, after this check passes.
var permissions = map[string]RoleSet{
	"GET /api/auth/me":      authenticated,
	"POST /api/auth/logout": authenticated,

	"GET /api/admin/users":            adminOnly,
	"GET /api/admin/users/:id":        adminOnly,
	"PATCH /api/admin/users/:id":      adminOnly,
	"DELETE /api/admin/users/:id":     adminOnly,
	"PATCH /api/admin/assign-role":    adminOnly,
	"GET /api/admin/appointments":     adminOnly,
	"GET /api/admin/prescriptions":    adminOnly,
	"GET /api/admin/blogs":            adminOnly,
	"GET /api/admin/comments":         adminOnly,
	"PUT /api/admin/settings/:key":    adminOnly,
	"DELETE /api/admin/settings/:key": adminOnly,

	"POST /api/doctors":       adminOnly,
	"GET /api/doctors":        authenticated,
	"GET /api/doctors/:id":    authenticated,
	"PATCH /api/doctors/:id":  staff,
	"DELETE /api/doctors/:id": adminOnly,

	"GET /api/patients":       staff,
	"GET /api/patients/:id":   authenticated,
	"PATCH /api/patients/:id": adminOrOwner,

	"POST /api/appointments":       adminOrOwner,
	"GET /api/appointments":        authenticated,
	"GET /api/appointments/:id":    authenticated,
	"PATCH /api/appointments/:id":  authenticated,
	"DELETE /api/appointments/:id": adminOnly,

	"POST /api/prescriptions":       staff,
	"GET /api/prescriptions":        authenticated,
	"GET /api/prescriptions/:id":    authenticated,
	"PATCH /api/prescriptions/:id":  staff,
	"DELETE /api/prescriptions/:id": staff,

	"POST /api/blogs":       staff,
	"PATCH /api/blogs/:id":  staff,
	"DELETE /api/blogs/:id": staff,

	"POST /api/blogs/:id/comments":              authenticated,
	"DELETE /api/blogs/:id/comments/:commentId": authenticated,

	"POST /api/media/upload":        authenticated,
	"DELETE /api/media/:publicId":   authenticated,
	"GET /api/media/owner/:ownerId": authenticated,
}

// Allowed reports whether role may call the route registered at routePath
// with the given method. Unknown routes and unknown roles are denied.
func Allowed(method, routePath string, role models.Role) bool {
	set, ok := permissions[method+" "+routePath]
	if !ok {
		return false
	}
	_, ok = set[role]
	return ok
}
