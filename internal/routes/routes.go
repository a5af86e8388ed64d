package routes

import (
	"time"

	"github.com/clinichq/clinic-backend/internal/config"
	"github.com/clinichq/clinic-backend/internal/handlers"
	"github.com/clinichq/clinic-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	Admin        *handlers.AdminHandler
	Doctor       *handlers.DoctorHandler
	Patient      *handlers.PatientHandler
	Appointment  *handlers.AppointmentHandler
	Prescription *handlers.PrescriptionHandler
	Blog         *handlers.BlogHandler
	Media        *handlers.MediaHandler
	Settings     *handlers.SettingsHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Public
	api.Get("/health", h.Health.Check)
	api.Get("/settings", h.Settings.GetSettings)
	api.Get("/blogs", h.Blog.List)
	api.Get("/blogs/:id", h.Blog.Get)
	api.Get("/blogs/:id/comments", h.Blog.ListComments)

	// Auth is public but gets a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", h.Auth.Signup)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	// Every route below requires a valid access token and a role listed
	// in the permission table for the matched route. Routes are
	// registered with full paths so the matched pattern lines up with
	// the table keys.
	jwt := middleware.JWTProtected(cfg)
	rbac := middleware.RoleGuard()

	api.Get("/auth/me", jwt, rbac, h.Auth.Me)
	api.Post("/auth/logout", jwt, rbac, h.Auth.Logout)

	api.Get("/admin/users", jwt, rbac, h.Admin.ListUsers)
	api.Get("/admin/users/:id", jwt, rbac, h.Admin.GetUser)
	api.Patch("/admin/users/:id", jwt, rbac, h.Admin.UpdateUser)
	api.Delete("/admin/users/:id", jwt, rbac, h.Admin.DeleteUser)
	api.Patch("/admin/assign-role", jwt, rbac, h.Admin.AssignRole)
	api.Get("/admin/appointments", jwt, rbac, h.Admin.ListAppointments)
	api.Get("/admin/prescriptions", jwt, rbac, h.Admin.ListPrescriptions)
	api.Get("/admin/blogs", jwt, rbac, h.Admin.ListBlogPosts)
	api.Get("/admin/comments", jwt, rbac, h.Admin.ListComments)
	api.Put("/admin/settings/:key", jwt, rbac, h.Settings.SetKey)
	api.Delete("/admin/settings/:key", jwt, rbac, h.Settings.DeleteKey)

	api.Post("/doctors", jwt, rbac, h.Doctor.Create)
	api.Get("/doctors", jwt, rbac, h.Doctor.List)
	api.Get("/doctors/:id", jwt, rbac, h.Doctor.Get)
	api.Patch("/doctors/:id", jwt, rbac, h.Doctor.Update)
	api.Delete("/doctors/:id", jwt, rbac, h.Doctor.Delete)

	api.Get("/patients", jwt, rbac, h.Patient.List)
	api.Get("/patients/:id", jwt, rbac, h.Patient.Get)
	api.Patch("/patients/:id", jwt, rbac, h.Patient.Update)

	api.Post("/appointments", jwt, rbac, h.Appointment.Create)
	api.Get("/appointments", jwt, rbac, h.Appointment.List)
	api.Get("/appointments/:id", jwt, rbac, h.Appointment.Get)
	api.Patch("/appointments/:id", jwt, rbac, h.Appointment.Update)
	api.Delete("/appointments/:id", jwt, rbac, h.Appointment.Delete)

	api.Post("/prescriptions", jwt, rbac, h.Prescription.Create)
	api.Get("/prescriptions", jwt, rbac, h.Prescription.List)
	api.Get("/prescriptions/:id", jwt, rbac, h.Prescription.Get)
	api.Patch("/prescriptions/:id", jwt, rbac, h.Prescription.Update)
	api.Delete("/prescriptions/:id", jwt, rbac, h.Prescription.Delete)

	api.Post("/blogs", jwt, rbac, h.Blog.Create)
	api.Patch("/blogs/:id", jwt, rbac, h.Blog.Update)
	api.Delete("/blogs/:id", jwt, rbac, h.Blog.Delete)
	api.Post("/blogs/:id/comments", jwt, rbac, h.Blog.AddComment)
	api.Delete("/blogs/:id/comments/:commentId", jwt, rbac, h.Blog.DeleteComment)

	api.Post("/media/upload", jwt, rbac, h.Media.Upload)
	api.Get("/media/owner/:ownerId", jwt, rbac, h.Media.ListByOwner)
	api.Delete("/media/:publicId", jwt, rbac, h.Media.Delete)
	// Public blob serving; the public id is the only handle.
	api.Get("/media/:publicId", h.Media.Serve)
}
