package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/han020423/Attendance-management/internals/constants"
	courseModel "github.com/han020423/Attendance-management/internals/features/academic/courses/model"
	attendanceModel "github.com/han020423/Attendance-management/internals/features/attendance/attendance/model"
	sessionModel "github.com/han020423/Attendance-management/internals/features/attendance/sessions/model"
	auditService "github.com/han020423/Attendance-management/internals/features/audit/service"
	notifModel "github.com/han020423/Attendance-management/internals/features/notifications/model"
	notifService "github.com/han020423/Attendance-management/internals/features/notifications/service"
	helper "github.com/han020423/Attendance-management/internals/helpers"
)

func loadSessionCourse(tx *gorm.DB, sessionID uuid.UUID) (*sessionModel.ClassSessionModel, *courseModel.CourseModel, error) {
	var session sessionModel.ClassSessionModel
	if err := tx.First(&session, "class_session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}
	var course courseModel.CourseModel
	if err := tx.First(&course, "course_id = ?", session.ClassSessionCourseID).Error; err != nil {
		return nil, nil, err
	}
	return &session, &course, nil
}

// UpdateStatus mengubah status satu baris presensi yang sudah ada.
// Mutasi oleh dosen selalu diaudit dengan snapshot sebelum/sesudah.
func UpdateStatus(db *gorm.DB, attendanceID, actorID uuid.UUID, role string, newStatus int, reason string) (*attendanceModel.AttendanceModel, error) {
	if !attendanceModel.IsValidAttendanceStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	var row attendanceModel.AttendanceModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, "attendance_id = ?", attendanceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAttendanceNotFound
			}
			return err
		}
		_, course, err := loadSessionCourse(tx, row.AttendanceSessionID)
		if err != nil {
			return err
		}
		if !helper.CanModerateCourse(role, actorID, course.CourseInstructorID) {
			return ErrForbidden
		}

		oldStatus := row.AttendanceStatus
		row.AttendanceStatus = newStatus
		row.AttendanceUpdatedBy = &actorID
		if err := tx.Model(&row).Updates(map[string]any{
			"attendance_status":     newStatus,
			"attendance_updated_by": actorID,
		}).Error; err != nil {
			return err
		}

		return auditService.Log(tx, actorID,
			constants.AuditUpdateAttendanceStatus, "attendance", &row.AttendanceID,
			map[string]any{
				"old_status": oldStatus,
				"new_status": newStatus,
				"reason":     reason,
			})
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Peringatan absensi dikirim tepat pada absen kumulatif ke-2 dan ke-3,
// sekali saja per ambang per mahasiswa per mata kuliah.
var warnThresholds = []int64{2, 3}

// UpsertByStudent menilai manual satu mahasiswa pada satu sesi: buat baris
// kalau belum ada, timpa kalau sudah. Sesi pemiliknya dipaksa CLOSED (menilai
// manual mengakhiri jendela check-in). Status ABSENT memicu cek ambang
// peringatan. Semua tulisan satu transaksi; push SSE setelah commit.
func UpsertByStudent(db *gorm.DB, sink notifService.Sink, sessionID, studentID, actorID uuid.UUID, role string, newStatus int, reason string) (*attendanceModel.AttendanceModel, error) {
	if !attendanceModel.IsValidAttendanceStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	var (
		row     attendanceModel.AttendanceModel
		warnTo  *uuid.UUID
		warning notifService.Payload
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		session, course, err := loadSessionCourse(tx, sessionID)
		if err != nil {
			return err
		}
		if !helper.CanModerateCourse(role, actorID, course.CourseInstructorID) {
			return ErrForbidden
		}

		res := tx.Where(attendanceModel.AttendanceModel{
			AttendanceSessionID: sessionID,
			AttendanceStudentID: studentID,
		}).FirstOrCreate(&row)
		if res.Error != nil {
			return res.Error
		}
		created := res.RowsAffected > 0

		oldStatus := row.AttendanceStatus
		now := time.Now().UTC()
		row.AttendanceStatus = newStatus
		row.AttendanceUpdatedBy = &actorID
		if err := tx.Model(&row).Updates(map[string]any{
			"attendance_status":      newStatus,
			"attendance_checked_at":  now,
			"attendance_method_used": attendanceModel.MethodManual,
			"attendance_updated_by":  actorID,
		}).Error; err != nil {
			return err
		}

		// menilai manual menutup jendela check-in sesi ini
		if session.ClassSessionStatus != sessionModel.SessionStatusClosed {
			if err := tx.Model(session).Updates(map[string]any{
				"class_session_status":   sessionModel.SessionStatusClosed,
				"class_session_pin_code": nil,
			}).Error; err != nil {
				return err
			}
		}

		action := constants.AuditUpdateAttendanceStatus
		if created {
			action = constants.AuditCreateAttendanceStatus
		}
		if err := auditService.Log(tx, actorID, action, "attendance", &row.AttendanceID,
			map[string]any{
				"old_status": oldStatus,
				"new_status": newStatus,
				"reason":     reason,
			}); err != nil {
			return err
		}

		if newStatus != attendanceModel.AttendanceStatusAbsent {
			return nil
		}

		var absences int64
		if err := tx.Model(&attendanceModel.AttendanceModel{}).
			Joins("JOIN class_sessions ON class_sessions.class_session_id = attendances.attendance_session_id").
			Where("class_sessions.class_session_course_id = ? AND attendances.attendance_student_id = ? AND attendances.attendance_status = ?",
				course.CourseID, studentID, attendanceModel.AttendanceStatusAbsent).
			Count(&absences).Error; err != nil {
			return err
		}

		for _, n := range warnThresholds {
			if absences != n {
				continue
			}
			link := fmt.Sprintf("/courses/%s", course.CourseID)
			dedup := fmt.Sprintf("absence_warning:%s:%s:%d", course.CourseID, studentID, n)
			notif := notifModel.NotificationModel{
				NotificationUserID:   studentID,
				NotificationType:     constants.NotifAbsenceWarning,
				NotificationMessage:  fmt.Sprintf("[%s] Peringatan: total absen Anda sudah %d kali.", course.CourseTitle, n),
				NotificationLink:     &link,
				NotificationDedupKey: &dedup,
			}
			createdNotif, err := notifService.CreateDedupInTx(tx, &notif)
			if err != nil {
				return err
			}
			if createdNotif {
				warnTo = &studentID
				warning = notifService.Payload{
					Type:    notif.NotificationType,
					Message: notif.NotificationMessage,
					Link:    notif.NotificationLink,
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if warnTo != nil {
		notifService.Push(sink, *warnTo, warning)
	}
	return &row, nil
}
