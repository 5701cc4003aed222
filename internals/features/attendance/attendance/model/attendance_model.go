package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	sessionModel "github.com/han020423/Attendance-management/internals/features/attendance/sessions/model"
)

// Status presensi per baris.
const (
	AttendanceStatusUnset   = 0
	AttendanceStatusPresent = 1
	AttendanceStatusLate    = 2
	AttendanceStatusAbsent  = 3
	AttendanceStatusExcused = 4
)

// Metode yang tercatat pada baris presensi.
const (
	MethodPIN        = "PIN"
	MethodElectronic = "ELECTRONIC"
	MethodManual     = "MANUAL"
	MethodExcuse     = "EXCUSE"
)

func IsValidAttendanceStatus(s int) bool {
	return s >= AttendanceStatusUnset && s <= AttendanceStatusExcused
}

// AttendanceModel: satu baris per (session, student); source of truth status
// kehadiran. updated_by adalah referensi lemah ke aktor (SET NULL saat aktor
// dihapus).
type AttendanceModel struct {
	AttendanceID uuid.UUID `gorm:"type:uuid;primaryKey;column:attendance_id" json:"attendance_id"`

	AttendanceSessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendances_session_student;column:attendance_session_id" json:"attendance_session_id"`
	AttendanceStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendances_session_student;column:attendance_student_id" json:"attendance_student_id"`

	AttendanceStatus     int        `gorm:"not null;default:0;column:attendance_status" json:"attendance_status"`
	AttendanceCheckedAt  *time.Time `gorm:"column:attendance_checked_at" json:"attendance_checked_at,omitempty"`
	AttendanceMethodUsed *string    `gorm:"column:attendance_method_used" json:"attendance_method_used,omitempty"`
	AttendanceUpdatedBy  *uuid.UUID `gorm:"type:uuid;column:attendance_updated_by" json:"attendance_updated_by,omitempty"`

	AttendanceCreatedAt time.Time `gorm:"column:attendance_created_at;autoCreateTime" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time `gorm:"column:attendance_updated_at;autoUpdateTime" json:"attendance_updated_at"`

	// Sesi dihapus -> baris presensi ikut terhapus.
	Session *sessionModel.ClassSessionModel `gorm:"foreignKey:AttendanceSessionID;references:ClassSessionID;constraint:OnDelete:CASCADE" json:"session,omitempty"`
}

func (AttendanceModel) TableName() string { return "attendances" }

func (m *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	return nil
}
