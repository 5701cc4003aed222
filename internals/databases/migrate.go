// file: internals/databases/migrate.go
package database

import (
	"gorm.io/gorm"

	courseModel "github.com/han020423/Attendance-management/internals/features/academic/courses/model"
	holidayModel "github.com/han020423/Attendance-management/internals/features/academic/holidays/model"
	appealModel "github.com/han020423/Attendance-management/internals/features/attendance/appeals/model"
	attendanceModel "github.com/han020423/Attendance-management/internals/features/attendance/attendance/model"
	excuseModel "github.com/han020423/Attendance-management/internals/features/attendance/excuses/model"
	policyModel "github.com/han020423/Attendance-management/internals/features/attendance/policy/model"
	sessionModel "github.com/han020423/Attendance-management/internals/features/attendance/sessions/model"
	auditModel "github.com/han020423/Attendance-management/internals/features/audit/model"
	notifModel "github.com/han020423/Attendance-management/internals/features/notifications/model"
)

// AutoMigrate menyelaraskan skema seluruh model. Urutan mengikuti arah FK.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&courseModel.CourseModel{},
		&courseModel.EnrollmentModel{},
		&holidayModel.HolidayModel{},
		&sessionModel.ClassSessionModel{},
		&attendanceModel.AttendanceModel{},
		&excuseModel.ExcuseRequestModel{},
		&excuseModel.ExcuseFileModel{},
		&appealModel.AttendanceAppealModel{},
		&policyModel.CoursePolicyModel{},
		&auditModel.AuditLogModel{},
		&notifModel.NotificationModel{},
	)
}
