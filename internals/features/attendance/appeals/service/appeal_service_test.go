package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/han020423/Attendance-management/internals/constants"
	appealModel "github.com/han020423/Attendance-management/internals/features/attendance/appeals/model"
	attendanceModel "github.com/han020423/Attendance-management/internals/features/attendance/attendance/model"
	sessionModel "github.com/han020423/Attendance-management/internals/features/attendance/sessions/model"
	auditModel "github.com/han020423/Attendance-management/internals/features/audit/model"
	notifModel "github.com/han020423/Attendance-management/internals/features/notifications/model"
	"github.com/han020423/Attendance-management/internals/testutil"
)

type appealFixture struct {
	db           *gorm.DB
	instructorID uuid.UUID
	studentID    uuid.UUID
	attendanceID uuid.UUID
}

// newAppealFixture menyiapkan satu baris presensi ABSENT milik mahasiswa.
func newAppealFixture(t *testing.T) appealFixture {
	t.Helper()

	db := testutil.OpenDB(t)
	instructorID := uuid.New()
	course := testutil.SeedCourse(t, db, instructorID)
	session := testutil.SeedSession(t, db, course.CourseID, 1, sessionModel.SessionStatusClosed)

	studentID := uuid.New()
	row := attendanceModel.AttendanceModel{
		AttendanceSessionID: session.ClassSessionID,
		AttendanceStudentID: studentID,
		AttendanceStatus:    attendanceModel.AttendanceStatusAbsent,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed attendance: %v", err)
	}
	return appealFixture{
		db:           db,
		instructorID: instructorID,
		studentID:    studentID,
		attendanceID: row.AttendanceID,
	}
}

func TestCreateAppealRequiresOwnership(t *testing.T) {
	f := newAppealFixture(t)

	_, err := Create(f.db, f.attendanceID, uuid.New(), "saya hadir", nil)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	appeal, err := Create(f.db, f.attendanceID, f.studentID, "saya hadir tapi tidak sempat scan", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if appeal.AttendanceAppealStatus != appealModel.AppealStatusPending {
		t.Errorf("status = %s, want PENDING", appeal.AttendanceAppealStatus)
	}
}

func TestReviewApproveAppliesRequestedStatus(t *testing.T) {
	f := newAppealFixture(t)
	want := attendanceModel.AttendanceStatusPresent
	appeal, err := Create(f.db, f.attendanceID, f.studentID, "saya hadir", &want)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	reviewed, err := Review(f.db, nil, appeal.AttendanceAppealID, f.instructorID,
		constants.RoleInstructor, appealModel.AppealStatusApproved, nil)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if reviewed.AttendanceAppealStatus != appealModel.AppealStatusApproved {
		t.Errorf("status banding = %s", reviewed.AttendanceAppealStatus)
	}

	var row attendanceModel.AttendanceModel
	if err := f.db.First(&row, "attendance_id = ?", f.attendanceID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.AttendanceStatus != want {
		t.Errorf("status presensi = %d, want %d", row.AttendanceStatus, want)
	}
	if row.AttendanceUpdatedBy == nil || *row.AttendanceUpdatedBy != f.instructorID {
		t.Error("updated_by harus terisi peninjau")
	}

	var notifs, audits int64
	if err := f.db.Model(&notifModel.NotificationModel{}).
		Where("notification_type = ?", constants.NotifAppealResult).
		Count(&notifs).Error; err != nil {
		t.Fatalf("count notif: %v", err)
	}
	if err := f.db.Model(&auditModel.AuditLogModel{}).
		Where("audit_log_action = ?", constants.AuditAppealApproved).
		Count(&audits).Error; err != nil {
		t.Fatalf("count audit: %v", err)
	}
	if notifs != 1 || audits != 1 {
		t.Errorf("notif = %d audit = %d, want 1/1", notifs, audits)
	}
}

func TestReviewRejectLeavesAttendanceUntouched(t *testing.T) {
	f := newAppealFixture(t)
	want := attendanceModel.AttendanceStatusPresent
	appeal, err := Create(f.db, f.attendanceID, f.studentID, "saya hadir", &want)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := Review(f.db, nil, appeal.AttendanceAppealID, f.instructorID,
		constants.RoleInstructor, appealModel.AppealStatusRejected, nil); err != nil {
		t.Fatalf("Review: %v", err)
	}

	var row attendanceModel.AttendanceModel
	if err := f.db.First(&row, "attendance_id = ?", f.attendanceID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.AttendanceStatus != attendanceModel.AttendanceStatusAbsent {
		t.Errorf("REJECTED tidak boleh mengubah presensi, dapat %d", row.AttendanceStatus)
	}
}

func TestReviewTerminalAppealRejected(t *testing.T) {
	f := newAppealFixture(t)
	appeal, err := Create(f.db, f.attendanceID, f.studentID, "saya hadir", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := Review(f.db, nil, appeal.AttendanceAppealID, f.instructorID,
		constants.RoleInstructor, appealModel.AppealStatusApproved, nil); err != nil {
		t.Fatalf("review pertama: %v", err)
	}

	_, err = Review(f.db, nil, appeal.AttendanceAppealID, f.instructorID,
		constants.RoleInstructor, appealModel.AppealStatusRejected, nil)
	if !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("err = %v, want ErrAlreadyReviewed", err)
	}
}

func TestReviewForbiddenForOtherInstructor(t *testing.T) {
	f := newAppealFixture(t)
	appeal, err := Create(f.db, f.attendanceID, f.studentID, "saya hadir", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = Review(f.db, nil, appeal.AttendanceAppealID, uuid.New(),
		constants.RoleInstructor, appealModel.AppealStatusApproved, nil)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}
