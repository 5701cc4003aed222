package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/han020423/Attendance-management/internals/constants"
	courseModel "github.com/han020423/Attendance-management/internals/features/academic/courses/model"
	appealModel "github.com/han020423/Attendance-management/internals/features/attendance/appeals/model"
	attendanceModel "github.com/han020423/Attendance-management/internals/features/attendance/attendance/model"
	sessionModel "github.com/han020423/Attendance-management/internals/features/attendance/sessions/model"
	auditService "github.com/han020423/Attendance-management/internals/features/audit/service"
	notifModel "github.com/han020423/Attendance-management/internals/features/notifications/model"
	notifService "github.com/han020423/Attendance-management/internals/features/notifications/service"
	helper "github.com/han020423/Attendance-management/internals/helpers"
)

var (
	ErrAppealNotFound     = errors.New("banding tidak ditemukan")
	ErrAttendanceNotFound = errors.New("data presensi tidak ditemukan")
	ErrAlreadyReviewed    = errors.New("banding sudah pernah ditinjau")
	ErrInvalidDecision    = errors.New("keputusan harus APPROVED atau REJECTED")
	ErrInvalidStatus      = errors.New("status presensi yang diminta tidak dikenal")
	ErrForbidden          = errors.New("anda tidak berhak atas aksi ini")
)

// Create mengajukan banding atas satu baris presensi. Baris harus milik
// mahasiswa pengaju.
func Create(db *gorm.DB, attendanceID, studentID uuid.UUID, message string, newStatus *int) (*appealModel.AttendanceAppealModel, error) {
	if newStatus != nil && !attendanceModel.IsValidAttendanceStatus(*newStatus) {
		return nil, ErrInvalidStatus
	}

	var row attendanceModel.AttendanceModel
	if err := db.First(&row, "attendance_id = ?", attendanceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}
	if row.AttendanceStudentID != studentID {
		return nil, ErrForbidden
	}

	appeal := appealModel.AttendanceAppealModel{
		AttendanceAppealAttendanceID: attendanceID,
		AttendanceAppealStudentID:    studentID,
		AttendanceAppealStatus:       appealModel.AppealStatusPending,
		AttendanceAppealMessage:      message,
		AttendanceAppealNewStatus:    newStatus,
	}
	if err := db.Create(&appeal).Error; err != nil {
		return nil, err
	}
	return &appeal, nil
}

// ListMine: banding milik satu mahasiswa, terbaru dulu.
func ListMine(db *gorm.DB, studentID uuid.UUID) ([]appealModel.AttendanceAppealModel, error) {
	var rows []appealModel.AttendanceAppealModel
	if err := db.
		Where("attendance_appeal_student_id = ?", studentID).
		Order("attendance_appeal_created_at DESC").
		Preload("Attendance").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListPendingForCourse: antrian banding satu mata kuliah.
func ListPendingForCourse(db *gorm.DB, courseID uuid.UUID) ([]appealModel.AttendanceAppealModel, error) {
	var rows []appealModel.AttendanceAppealModel
	if err := db.
		Joins("JOIN attendances ON attendances.attendance_id = attendance_appeals.attendance_appeal_attendance_id").
		Joins("JOIN class_sessions ON class_sessions.class_session_id = attendances.attendance_session_id").
		Where("class_sessions.class_session_course_id = ? AND attendance_appeals.attendance_appeal_status = ?",
			courseID, appealModel.AppealStatusPending).
		Order("attendance_appeals.attendance_appeal_created_at ASC").
		Preload("Attendance").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Review memutuskan satu banding dengan bentuk transaksi yang sama dengan
// tinjauan izin: status banding, koreksi presensi (bila APPROVED dan ada
// status yang diminta), notifikasi, dan audit commit bersama. Banding
// terminal tidak bisa ditinjau ulang.
func Review(db *gorm.DB, sink notifService.Sink, appealID, reviewerID uuid.UUID, role, decision string, comment *string) (*appealModel.AttendanceAppealModel, error) {
	if decision != appealModel.AppealStatusApproved && decision != appealModel.AppealStatusRejected {
		return nil, ErrInvalidDecision
	}

	var (
		appeal  appealModel.AttendanceAppealModel
		payload notifService.Payload
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&appeal, "attendance_appeal_id = ?", appealID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAppealNotFound
			}
			return err
		}
		if appeal.IsTerminal() {
			return ErrAlreadyReviewed
		}

		var row attendanceModel.AttendanceModel
		if err := tx.First(&row, "attendance_id = ?", appeal.AttendanceAppealAttendanceID).Error; err != nil {
			return err
		}
		var session sessionModel.ClassSessionModel
		if err := tx.First(&session, "class_session_id = ?", row.AttendanceSessionID).Error; err != nil {
			return err
		}
		var course courseModel.CourseModel
		if err := tx.First(&course, "course_id = ?", session.ClassSessionCourseID).Error; err != nil {
			return err
		}
		if !helper.CanModerateCourse(role, reviewerID, course.CourseInstructorID) {
			return ErrForbidden
		}

		appeal.AttendanceAppealStatus = decision
		appeal.AttendanceAppealReviewedBy = &reviewerID
		appeal.AttendanceAppealReviewComment = comment
		if err := tx.Model(&appeal).Updates(map[string]any{
			"attendance_appeal_status":         decision,
			"attendance_appeal_reviewed_by":    reviewerID,
			"attendance_appeal_review_comment": comment,
		}).Error; err != nil {
			return err
		}

		if decision == appealModel.AppealStatusApproved && appeal.AttendanceAppealNewStatus != nil {
			if !attendanceModel.IsValidAttendanceStatus(*appeal.AttendanceAppealNewStatus) {
				return ErrInvalidStatus
			}
			if err := tx.Model(&row).Updates(map[string]any{
				"attendance_status":     *appeal.AttendanceAppealNewStatus,
				"attendance_updated_by": reviewerID,
			}).Error; err != nil {
				return err
			}
		}

		verdict := "ditolak"
		if decision == appealModel.AppealStatusApproved {
			verdict = "diterima"
		}
		link := fmt.Sprintf("/courses/%s", course.CourseID)
		payload = notifService.Payload{
			Type:    constants.NotifAppealResult,
			Message: fmt.Sprintf("[%s] Banding presensi pekan ke-%d Anda %s.", course.CourseTitle, session.ClassSessionWeek, verdict),
			Link:    &link,
		}
		if err := notifService.CreateInTx(tx, &notifModel.NotificationModel{
			NotificationUserID:  appeal.AttendanceAppealStudentID,
			NotificationType:    payload.Type,
			NotificationMessage: payload.Message,
			NotificationLink:    payload.Link,
		}); err != nil {
			return err
		}

		action := constants.AuditAppealRejected
		if decision == appealModel.AppealStatusApproved {
			action = constants.AuditAppealApproved
		}
		meta := map[string]any{"decision": decision}
		if appeal.AttendanceAppealNewStatus != nil {
			meta["new_status"] = *appeal.AttendanceAppealNewStatus
		}
		if comment != nil {
			meta["comment"] = *comment
		}
		return auditService.Log(tx, reviewerID, action, "attendance_appeal", &appeal.AttendanceAppealID, meta)
	})
	if err != nil {
		return nil, err
	}

	notifService.Push(sink, appeal.AttendanceAppealStudentID, payload)
	return &appeal, nil
}
