// file: internals/route/base_routes.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	database "github.com/han020423/Attendance-management/internals/databases"
)

var startTime = time.Now()

// BaseRoutes: endpoint tanpa auth (healthcheck).
func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/health", func(c *fiber.Ctx) error {
		status := "ok"
		if err := database.Ping(); err != nil {
			status = "degraded"
		}
		return c.JSON(fiber.Map{
			"status": status,
			"uptime": time.Since(startTime).String(),
		})
	})
}
