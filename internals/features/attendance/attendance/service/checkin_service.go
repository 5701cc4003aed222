package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceModel "github.com/han020423/Attendance-management/internals/features/attendance/attendance/model"
	sessionModel "github.com/han020423/Attendance-management/internals/features/attendance/sessions/model"
)

// Toleransi keterlambatan dihitung dari jam mulai sesi.
const lateGrace = 10 * time.Minute

// CheckIn mencatat kehadiran mahasiswa pada sesi yang sedang OPEN.
// Metode PIN dicocokkan persis dengan pin sesi. Baris presensi harus sudah
// di-seed saat sesi dibuka; tidak ada baris berarti mahasiswa tidak terdaftar.
// Pemanggilan ulang menimpa hasil sebelumnya (idempoten). Check-in mandiri
// tidak diaudit.
func CheckIn(db *gorm.DB, sessionID, studentID uuid.UUID, method string, pin *string, now time.Time) (*attendanceModel.AttendanceModel, error) {
	var row attendanceModel.AttendanceModel

	err := db.Transaction(func(tx *gorm.DB) error {
		var session sessionModel.ClassSessionModel
		if err := tx.First(&session, "class_session_id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		if session.ClassSessionStatus != sessionModel.SessionStatusOpen {
			return ErrInvalidState
		}

		if method == attendanceModel.MethodPIN {
			if session.ClassSessionPinCode == nil || pin == nil || *pin != *session.ClassSessionPinCode {
				return ErrPINMismatch
			}
		}

		if err := tx.First(&row,
			"attendance_session_id = ? AND attendance_student_id = ?",
			sessionID, studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotEnrolled
			}
			return err
		}

		status := attendanceModel.AttendanceStatusPresent
		if start, err := session.StartTime(); err == nil && now.After(start.Add(lateGrace)) {
			status = attendanceModel.AttendanceStatusLate
		}

		row.AttendanceStatus = status
		row.AttendanceCheckedAt = &now
		row.AttendanceMethodUsed = &method
		return tx.Model(&row).Updates(map[string]any{
			"attendance_status":      status,
			"attendance_checked_at":  now,
			"attendance_method_used": method,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetMyAttendance: riwayat presensi satu mahasiswa pada satu mata kuliah,
// berurut pekan.
func GetMyAttendance(db *gorm.DB, courseID, studentID uuid.UUID) ([]attendanceModel.AttendanceModel, error) {
	var rows []attendanceModel.AttendanceModel
	if err := db.
		Joins("JOIN class_sessions ON class_sessions.class_session_id = attendances.attendance_session_id").
		Where("class_sessions.class_session_course_id = ? AND attendances.attendance_student_id = ?", courseID, studentID).
		Order("class_sessions.class_session_week ASC").
		Preload("Session").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
