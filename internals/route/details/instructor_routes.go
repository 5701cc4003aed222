// file: internals/route/details/instructor_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	appealController "github.com/han020423/Attendance-management/internals/features/attendance/appeals/controller"
	attendanceController "github.com/han020423/Attendance-management/internals/features/attendance/attendance/controller"
	excuseController "github.com/han020423/Attendance-management/internals/features/attendance/excuses/controller"
	policyController "github.com/han020423/Attendance-management/internals/features/attendance/policy/controller"
	sessionController "github.com/han020423/Attendance-management/internals/features/attendance/sessions/controller"
	sessionService "github.com/han020423/Attendance-management/internals/features/attendance/sessions/service"
	"github.com/han020423/Attendance-management/internals/features/notifications/sse"
)

// InstructorRoutes: fitur dosen pengampu (dan admin) di bawah /api/t.
func InstructorRoutes(r fiber.Router, db *gorm.DB, hub *sse.Hub, cal sessionService.HolidayCalendar) {
	sessionCtrl := sessionController.NewSessionController(db, hub, cal)
	attendanceCtrl := attendanceController.NewAttendanceController(db, hub)
	excuseCtrl := excuseController.NewExcuseController(db, hub)
	appealCtrl := appealController.NewAppealController(db, hub)
	policyCtrl := policyController.NewPolicyController(db)

	r.Post("/sessions/schedule-bulk", sessionCtrl.ScheduleBulk)
	r.Post("/sessions/:id/open", sessionCtrl.Open)
	r.Post("/sessions/:id/close", sessionCtrl.Close)
	r.Patch("/sessions/:id", sessionCtrl.Edit)
	r.Get("/sessions/:id/summary", sessionCtrl.Summary)

	r.Patch("/attendances/:id", attendanceCtrl.UpdateStatus)
	r.Put("/sessions/:id/attendances", attendanceCtrl.Upsert)

	r.Get("/courses/:courseId/excuses", excuseCtrl.ListPending)
	r.Post("/excuses/:id/review", excuseCtrl.Review)

	r.Get("/courses/:courseId/appeals", appealCtrl.ListPending)
	r.Post("/appeals/:id/review", appealCtrl.Review)

	r.Get("/courses/:courseId/policy", policyCtrl.Get)
	r.Patch("/courses/:courseId/policy", policyCtrl.Update)
	r.Get("/courses/:courseId/scores/:studentId", policyCtrl.StudentScore)
}
