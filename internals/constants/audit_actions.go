package constants

// Tag aksi untuk audit_logs. Append-only: jangan ubah nilai yang sudah terpakai.
const (
	AuditCreateAttendanceStatus = "CREATE_ATTENDANCE_STATUS"
	AuditUpdateAttendanceStatus = "UPDATE_ATTENDANCE_STATUS"
	AuditExcuseRequestApproved  = "EXCUSE_REQUEST_APPROVED"
	AuditExcuseRequestRejected  = "EXCUSE_REQUEST_REJECTED"
	AuditAppealApproved         = "APPEAL_APPROVED"
	AuditAppealRejected         = "APPEAL_REJECTED"
	AuditUpdateCoursePolicy     = "UPDATE_COURSE_POLICY"
)

// Tipe notifikasi in-app
const (
	NotifAttendanceOpen = "ATTENDANCE_OPEN"
	NotifExcuseResult   = "EXCUSE_RESULT"
	NotifAppealResult   = "APPEAL_RESULT"
	NotifAbsenceWarning = "ABSENCE_WARNING"
)
