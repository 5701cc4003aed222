// file: internals/route/details/admin_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditController "github.com/han020423/Attendance-management/internals/features/audit/controller"
)

// AdminRoutes: fitur admin di bawah /api/a.
func AdminRoutes(r fiber.Router, db *gorm.DB) {
	auditCtrl := auditController.NewAuditController(db)

	r.Get("/audit-logs", auditCtrl.List)
}
