// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/han020423/Attendance-management/internals/constants"
	holidayService "github.com/han020423/Attendance-management/internals/features/academic/holidays/service"
	"github.com/han020423/Attendance-management/internals/features/notifications/sse"
	authMiddleware "github.com/han020423/Attendance-management/internals/middlewares/auth"
	routeDetails "github.com/han020423/Attendance-management/internals/route/details"
)

// SetupRoutes merangkai seluruh route: /api/u (mahasiswa), /api/t (dosen
// pengampu + admin), /api/a (admin).
func SetupRoutes(app *fiber.App, db *gorm.DB, hub *sse.Hub) {
	cal := holidayService.NewGormCalendar(db)

	BaseRoutes(app, db)

	log.Println("[INFO] Setting up STUDENT group (/api/u)...")
	student := app.Group("/api/u",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles(constants.RoleErrorStudent("presensi"), constants.AllRoles...),
	)
	routeDetails.StudentRoutes(student, db, hub)

	log.Println("[INFO] Setting up INSTRUCTOR group (/api/t)...")
	instructor := app.Group("/api/t",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles(constants.RoleErrorInstructor("pengelolaan presensi"), constants.InstructorAndAbove...),
	)
	routeDetails.InstructorRoutes(instructor, db, hub, cal)

	log.Println("[INFO] Setting up ADMIN group (/api/a)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("audit"), constants.AdminOnly...),
	)
	routeDetails.AdminRoutes(admin, db)
}
