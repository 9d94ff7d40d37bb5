package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/course-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Courses   *handlers.CoursesHandler
	Users     *handlers.UsersHandler
	Admin     *handlers.AdminHandler
	UploadDir string
}

// RegisterRoutes wires HTTP routes. Uploaded media is re-exposed read-only
// under /uploads.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/courses", cfg.Courses.Publish)
	app.Get("/courses", cfg.Courses.List)
	app.Get("/courses/:id", cfg.Courses.Get)

	app.Post("/register", cfg.Users.Register)
	app.Post("/auth/login", cfg.Users.Login)

	adminGroup := app.Group("/admin")
	adminGroup.Post("/login", cfg.Admin.Login)
	adminGroup.Get("/login", cfg.Admin.Token)

	app.Static("/uploads", cfg.UploadDir)
}
