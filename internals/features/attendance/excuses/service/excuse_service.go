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
	excuseModel "github.com/han020423/Attendance-management/internals/features/attendance/excuses/model"
	sessionModel "github.com/han020423/Attendance-management/internals/features/attendance/sessions/model"
	auditService "github.com/han020423/Attendance-management/internals/features/audit/service"
	notifModel "github.com/han020423/Attendance-management/internals/features/notifications/model"
	notifService "github.com/han020423/Attendance-management/internals/features/notifications/service"
	helper "github.com/han020423/Attendance-management/internals/helpers"
)

var (
	ErrExcuseNotFound  = errors.New("pengajuan izin tidak ditemukan")
	ErrSessionNotFound = errors.New("sesi tidak ditemukan")
	ErrNotEnrolled     = errors.New("anda tidak terdaftar pada mata kuliah sesi ini")
	ErrAlreadyReviewed = errors.New("pengajuan izin sudah pernah ditinjau")
	ErrInvalidDecision = errors.New("keputusan harus APPROVED atau REJECTED")
	ErrForbidden       = errors.New("anda tidak berhak meninjau pengajuan ini")
)

// FileMeta: metadata satu berkas bukti yang sudah diunggah.
type FileMeta struct {
	Path         string
	OriginalName string
	MimeType     string
}

// Create menyimpan pengajuan izin mahasiswa beserta metadata berkasnya dalam
// satu transaksi. Mahasiswa harus terdaftar pada mata kuliah sesi tersebut.
func Create(db *gorm.DB, sessionID, studentID uuid.UUID, reasonText string, reasonCode *string, file *FileMeta) (*excuseModel.ExcuseRequestModel, error) {
	req := excuseModel.ExcuseRequestModel{
		ExcuseRequestSessionID:  sessionID,
		ExcuseRequestStudentID:  studentID,
		ExcuseRequestStatus:     excuseModel.ExcuseStatusPending,
		ExcuseRequestReasonText: reasonText,
		ExcuseRequestReasonCode: reasonCode,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var session sessionModel.ClassSessionModel
		if err := tx.First(&session, "class_session_id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}

		var enrolled int64
		if err := tx.Model(&courseModel.EnrollmentModel{}).
			Where("enrollment_course_id = ? AND enrollment_user_id = ?",
				session.ClassSessionCourseID, studentID).
			Count(&enrolled).Error; err != nil {
			return err
		}
		if enrolled == 0 {
			return ErrNotEnrolled
		}

		if err := tx.Create(&req).Error; err != nil {
			return err
		}
		if file != nil {
			f := excuseModel.ExcuseFileModel{
				ExcuseFileExcuseID:     req.ExcuseRequestID,
				ExcuseFilePath:         file.Path,
				ExcuseFileOriginalName: file.OriginalName,
				ExcuseFileMimeType:     file.MimeType,
			}
			if err := tx.Create(&f).Error; err != nil {
				return err
			}
			req.Files = []excuseModel.ExcuseFileModel{f}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListMine: seluruh pengajuan milik satu mahasiswa, terbaru dulu.
func ListMine(db *gorm.DB, studentID uuid.UUID) ([]excuseModel.ExcuseRequestModel, error) {
	var rows []excuseModel.ExcuseRequestModel
	if err := db.
		Where("excuse_request_student_id = ?", studentID).
		Order("excuse_request_created_at DESC").
		Preload("Files").
		Preload("Session").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListPendingForCourse: antrian tinjauan dosen untuk satu mata kuliah.
func ListPendingForCourse(db *gorm.DB, courseID uuid.UUID) ([]excuseModel.ExcuseRequestModel, error) {
	var rows []excuseModel.ExcuseRequestModel
	if err := db.
		Joins("JOIN class_sessions ON class_sessions.class_session_id = excuse_requests.excuse_request_session_id").
		Where("class_sessions.class_session_course_id = ? AND excuse_requests.excuse_request_status = ?",
			courseID, excuseModel.ExcuseStatusPending).
		Order("excuse_requests.excuse_request_created_at ASC").
		Preload("Files").
		Preload("Session").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Review memutuskan satu pengajuan izin sebagai satu unit kerja atomik:
// update status pengajuan, upsert presensi ke EXCUSED (bila APPROVED), satu
// notifikasi untuk mahasiswa, dan satu entri audit. Gagal di langkah mana pun
// membatalkan semuanya. Pengajuan yang sudah terminal tidak bisa ditinjau
// ulang. Push SSE dikirim setelah commit.
func Review(db *gorm.DB, sink notifService.Sink, requestID, reviewerID uuid.UUID, role, decision string, comment *string) (*excuseModel.ExcuseRequestModel, error) {
	if decision != excuseModel.ExcuseStatusApproved && decision != excuseModel.ExcuseStatusRejected {
		return nil, ErrInvalidDecision
	}

	var (
		req     excuseModel.ExcuseRequestModel
		payload notifService.Payload
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, "excuse_request_id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrExcuseNotFound
			}
			return err
		}
		if req.IsTerminal() {
			return ErrAlreadyReviewed
		}

		var session sessionModel.ClassSessionModel
		if err := tx.First(&session, "class_session_id = ?", req.ExcuseRequestSessionID).Error; err != nil {
			return err
		}
		var course courseModel.CourseModel
		if err := tx.First(&course, "course_id = ?", session.ClassSessionCourseID).Error; err != nil {
			return err
		}
		if !helper.CanModerateCourse(role, reviewerID, course.CourseInstructorID) {
			return ErrForbidden
		}

		req.ExcuseRequestStatus = decision
		req.ExcuseRequestReviewedBy = &reviewerID
		req.ExcuseRequestReviewComment = comment
		if err := tx.Model(&req).Updates(map[string]any{
			"excuse_request_status":         decision,
			"excuse_request_reviewed_by":    reviewerID,
			"excuse_request_review_comment": comment,
		}).Error; err != nil {
			return err
		}

		if decision == excuseModel.ExcuseStatusApproved {
			// izin diterima menimpa status apa pun yang sudah tercatat
			var row attendanceModel.AttendanceModel
			res := tx.Where(attendanceModel.AttendanceModel{
				AttendanceSessionID: req.ExcuseRequestSessionID,
				AttendanceStudentID: req.ExcuseRequestStudentID,
			}).FirstOrCreate(&row)
			if res.Error != nil {
				return res.Error
			}
			now := time.Now().UTC()
			if err := tx.Model(&row).Updates(map[string]any{
				"attendance_status":      attendanceModel.AttendanceStatusExcused,
				"attendance_checked_at":  now,
				"attendance_method_used": attendanceModel.MethodExcuse,
				"attendance_updated_by":  reviewerID,
			}).Error; err != nil {
				return err
			}
		}

		verdict := "ditolak"
		if decision == excuseModel.ExcuseStatusApproved {
			verdict = "diterima"
		}
		link := fmt.Sprintf("/courses/%s", course.CourseID)
		payload = notifService.Payload{
			Type:    constants.NotifExcuseResult,
			Message: fmt.Sprintf("[%s] Pengajuan izin pekan ke-%d Anda %s.", course.CourseTitle, session.ClassSessionWeek, verdict),
			Link:    &link,
		}
		if err := notifService.CreateInTx(tx, &notifModel.NotificationModel{
			NotificationUserID:  req.ExcuseRequestStudentID,
			NotificationType:    payload.Type,
			NotificationMessage: payload.Message,
			NotificationLink:    payload.Link,
		}); err != nil {
			return err
		}

		action := constants.AuditExcuseRequestRejected
		if decision == excuseModel.ExcuseStatusApproved {
			action = constants.AuditExcuseRequestApproved
		}
		meta := map[string]any{"decision": decision}
		if comment != nil {
			meta["comment"] = *comment
		}
		return auditService.Log(tx, reviewerID, action, "excuse_request", &req.ExcuseRequestID, meta)
	})
	if err != nil {
		return nil, err
	}

	notifService.Push(sink, req.ExcuseRequestStudentID, payload)
	return &req, nil
}
