package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/han020423/Attendance-management/internals/constants"
	attendanceModel "github.com/han020423/Attendance-management/internals/features/attendance/attendance/model"
	excuseModel "github.com/han020423/Attendance-management/internals/features/attendance/excuses/model"
	sessionModel "github.com/han020423/Attendance-management/internals/features/attendance/sessions/model"
	auditModel "github.com/han020423/Attendance-management/internals/features/audit/model"
	notifModel "github.com/han020423/Attendance-management/internals/features/notifications/model"
	"github.com/han020423/Attendance-management/internals/testutil"
)

type excuseFixture struct {
	db           *gorm.DB
	instructorID uuid.UUID
	studentID    uuid.UUID
	sessionID    uuid.UUID
	requestID    uuid.UUID
}

func newExcuseFixture(t *testing.T) excuseFixture {
	t.Helper()

	db := testutil.OpenDB(t)
	instructorID := uuid.New()
	course := testutil.SeedCourse(t, db, instructorID)
	students := testutil.SeedStudents(t, db, course.CourseID, 1)
	session := testutil.SeedSession(t, db, course.CourseID, 1, sessionModel.SessionStatusClosed)

	req, err := Create(db, session.ClassSessionID, students[0], "sakit demam", nil, &FileMeta{
		Path:         "uploads/surat-dokter.pdf",
		OriginalName: "surat dokter.pdf",
		MimeType:     "application/pdf",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return excuseFixture{
		db:           db,
		instructorID: instructorID,
		studentID:    students[0],
		sessionID:    session.ClassSessionID,
		requestID:    req.ExcuseRequestID,
	}
}

func (f excuseFixture) counts(t *testing.T) (notifs, audits int64) {
	t.Helper()
	if err := f.db.Model(&notifModel.NotificationModel{}).
		Where("notification_type = ?", constants.NotifExcuseResult).
		Count(&notifs).Error; err != nil {
		t.Fatalf("count notif: %v", err)
	}
	if err := f.db.Model(&auditModel.AuditLogModel{}).
		Where("audit_log_target_type = ?", "excuse_request").
		Count(&audits).Error; err != nil {
		t.Fatalf("count audit: %v", err)
	}
	return notifs, audits
}

func TestCreateStoresFileMetadata(t *testing.T) {
	f := newExcuseFixture(t)

	var req excuseModel.ExcuseRequestModel
	if err := f.db.Preload("Files").First(&req, "excuse_request_id = ?", f.requestID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if req.ExcuseRequestStatus != excuseModel.ExcuseStatusPending {
		t.Errorf("status = %s, want PENDING", req.ExcuseRequestStatus)
	}
	if len(req.Files) != 1 || req.Files[0].ExcuseFileOriginalName != "surat dokter.pdf" {
		t.Errorf("metadata berkas tidak tersimpan: %+v", req.Files)
	}
}

func TestCreateRequiresEnrollment(t *testing.T) {
	f := newExcuseFixture(t)

	_, err := Create(f.db, f.sessionID, uuid.New(), "izin keluarga", nil, nil)
	if !errors.Is(err, ErrNotEnrolled) {
		t.Fatalf("err = %v, want ErrNotEnrolled", err)
	}
}

func TestReviewApproveExcusesAttendance(t *testing.T) {
	f := newExcuseFixture(t)
	comment := "bukti lengkap"

	reviewed, err := Review(f.db, nil, f.requestID, f.instructorID, constants.RoleInstructor,
		excuseModel.ExcuseStatusApproved, &comment)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if reviewed.ExcuseRequestStatus != excuseModel.ExcuseStatusApproved {
		t.Errorf("status = %s", reviewed.ExcuseRequestStatus)
	}

	var row attendanceModel.AttendanceModel
	if err := f.db.First(&row,
		"attendance_session_id = ? AND attendance_student_id = ?",
		f.sessionID, f.studentID).Error; err != nil {
		t.Fatalf("baris presensi harus dibuat: %v", err)
	}
	if row.AttendanceStatus != attendanceModel.AttendanceStatusExcused {
		t.Errorf("status presensi = %d, want EXCUSED", row.AttendanceStatus)
	}
	if row.AttendanceMethodUsed == nil || *row.AttendanceMethodUsed != attendanceModel.MethodExcuse {
		t.Errorf("method_used = %v", row.AttendanceMethodUsed)
	}

	notifs, audits := f.counts(t)
	if notifs != 1 || audits != 1 {
		t.Errorf("notif = %d audit = %d, want 1/1", notifs, audits)
	}
}

func TestReviewApproveOverridesPriorStatus(t *testing.T) {
	f := newExcuseFixture(t)

	if err := f.db.Create(&attendanceModel.AttendanceModel{
		AttendanceSessionID: f.sessionID,
		AttendanceStudentID: f.studentID,
		AttendanceStatus:    attendanceModel.AttendanceStatusPresent,
	}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := Review(f.db, nil, f.requestID, f.instructorID, constants.RoleInstructor,
		excuseModel.ExcuseStatusApproved, nil); err != nil {
		t.Fatalf("Review: %v", err)
	}

	var row attendanceModel.AttendanceModel
	if err := f.db.First(&row,
		"attendance_session_id = ? AND attendance_student_id = ?",
		f.sessionID, f.studentID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.AttendanceStatus != attendanceModel.AttendanceStatusExcused {
		t.Errorf("APPROVED harus menimpa PRESENT, dapat %d", row.AttendanceStatus)
	}
}

func TestReviewTerminalIsRejectedWithoutNewAudit(t *testing.T) {
	f := newExcuseFixture(t)

	if _, err := Review(f.db, nil, f.requestID, f.instructorID, constants.RoleInstructor,
		excuseModel.ExcuseStatusRejected, nil); err != nil {
		t.Fatalf("review pertama: %v", err)
	}
	_, auditsBefore := f.counts(t)

	_, err := Review(f.db, nil, f.requestID, f.instructorID, constants.RoleInstructor,
		excuseModel.ExcuseStatusApproved, nil)
	if !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("err = %v, want ErrAlreadyReviewed", err)
	}

	_, auditsAfter := f.counts(t)
	if auditsAfter != auditsBefore {
		t.Errorf("tinjauan ulang tidak boleh menambah audit: %d -> %d", auditsBefore, auditsAfter)
	}

	var req excuseModel.ExcuseRequestModel
	if err := f.db.First(&req, "excuse_request_id = ?", f.requestID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if req.ExcuseRequestStatus != excuseModel.ExcuseStatusRejected {
		t.Errorf("keputusan pertama harus bertahan, dapat %s", req.ExcuseRequestStatus)
	}
}

func TestReviewForbiddenForOtherInstructor(t *testing.T) {
	f := newExcuseFixture(t)

	_, err := Review(f.db, nil, f.requestID, uuid.New(), constants.RoleInstructor,
		excuseModel.ExcuseStatusApproved, nil)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestReviewAdminCanReview(t *testing.T) {
	f := newExcuseFixture(t)

	if _, err := Review(f.db, nil, f.requestID, uuid.New(), constants.RoleAdmin,
		excuseModel.ExcuseStatusRejected, nil); err != nil {
		t.Fatalf("admin harus boleh meninjau: %v", err)
	}
}

func TestReviewRollsBackWhenAuditFails(t *testing.T) {
	f := newExcuseFixture(t)

	// paksa langkah audit gagal di tengah transaksi
	if err := f.db.Migrator().DropTable(&auditModel.AuditLogModel{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	_, err := Review(f.db, nil, f.requestID, f.instructorID, constants.RoleInstructor,
		excuseModel.ExcuseStatusApproved, nil)
	if err == nil {
		t.Fatal("review harus gagal saat audit tidak bisa ditulis")
	}

	var req excuseModel.ExcuseRequestModel
	if err := f.db.First(&req, "excuse_request_id = ?", f.requestID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if req.ExcuseRequestStatus != excuseModel.ExcuseStatusPending {
		t.Errorf("status harus kembali PENDING, dapat %s", req.ExcuseRequestStatus)
	}

	var attendances, notifs int64
	if err := f.db.Model(&attendanceModel.AttendanceModel{}).Count(&attendances).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if err := f.db.Model(&notifModel.NotificationModel{}).Count(&notifs).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if attendances != 0 || notifs != 0 {
		t.Errorf("semua efek harus di-rollback: attendances=%d notifs=%d", attendances, notifs)
	}
}
