// file: internals/route/details/student_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	appealController "github.com/han020423/Attendance-management/internals/features/attendance/appeals/controller"
	attendanceController "github.com/han020423/Attendance-management/internals/features/attendance/attendance/controller"
	excuseController "github.com/han020423/Attendance-management/internals/features/attendance/excuses/controller"
	policyController "github.com/han020423/Attendance-management/internals/features/attendance/policy/controller"
	sessionController "github.com/han020423/Attendance-management/internals/features/attendance/sessions/controller"
	notifController "github.com/han020423/Attendance-management/internals/features/notifications/controller"
	"github.com/han020423/Attendance-management/internals/features/notifications/sse"
)

// StudentRoutes: fitur mahasiswa di bawah /api/u.
func StudentRoutes(r fiber.Router, db *gorm.DB, hub *sse.Hub) {
	attendanceCtrl := attendanceController.NewAttendanceController(db, hub)
	sessionCtrl := sessionController.NewSessionController(db, hub, nil)
	excuseCtrl := excuseController.NewExcuseController(db, hub)
	appealCtrl := appealController.NewAppealController(db, hub)
	policyCtrl := policyController.NewPolicyController(db)
	notificationCtrl := notifController.NewNotificationController(db)
	sseCtrl := notifController.NewSSEController(hub)

	r.Post("/sessions/:id/check-in", attendanceCtrl.CheckIn)
	r.Get("/courses/:courseId/sessions", sessionCtrl.ListByCourse)
	r.Get("/courses/:courseId/attendance/me", attendanceCtrl.MyAttendance)
	r.Get("/courses/:courseId/score", policyCtrl.MyScore)

	r.Post("/excuses", excuseCtrl.Create)
	r.Get("/excuses", excuseCtrl.ListMine)

	r.Post("/appeals", appealCtrl.Create)
	r.Get("/appeals", appealCtrl.ListMine)

	r.Get("/notifications", notificationCtrl.List)
	r.Get("/notifications/unread-count", notificationCtrl.UnreadCount)
	r.Post("/notifications/:id/read", notificationCtrl.MarkRead)
	r.Get("/notifications/stream", sseCtrl.Stream)
}
