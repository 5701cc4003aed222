package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceModel "github.com/han020423/Attendance-management/internals/features/attendance/attendance/model"
)

// Status banding presensi. Terminal setelah APPROVED/REJECTED.
const (
	AppealStatusPending  = "PENDING"
	AppealStatusApproved = "APPROVED"
	AppealStatusRejected = "REJECTED"
)

// AttendanceAppealModel: banding mahasiswa atas satu baris presensi.
// new_status opsional: status yang diminta mahasiswa, diterapkan hanya
// saat APPROVED.
type AttendanceAppealModel struct {
	AttendanceAppealID uuid.UUID `gorm:"type:uuid;primaryKey;column:attendance_appeal_id" json:"attendance_appeal_id"`

	AttendanceAppealAttendanceID uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_appeal_attendance_id" json:"attendance_appeal_attendance_id"`
	AttendanceAppealStudentID    uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_appeal_student_id" json:"attendance_appeal_student_id"`

	AttendanceAppealStatus    string `gorm:"not null;default:PENDING;column:attendance_appeal_status" json:"attendance_appeal_status"`
	AttendanceAppealMessage   string `gorm:"not null;column:attendance_appeal_message" json:"attendance_appeal_message"`
	AttendanceAppealNewStatus *int   `gorm:"column:attendance_appeal_new_status" json:"attendance_appeal_new_status,omitempty"`

	AttendanceAppealReviewedBy    *uuid.UUID `gorm:"type:uuid;column:attendance_appeal_reviewed_by" json:"attendance_appeal_reviewed_by,omitempty"`
	AttendanceAppealReviewComment *string    `gorm:"column:attendance_appeal_review_comment" json:"attendance_appeal_review_comment,omitempty"`

	AttendanceAppealCreatedAt time.Time `gorm:"column:attendance_appeal_created_at;autoCreateTime" json:"attendance_appeal_created_at"`
	AttendanceAppealUpdatedAt time.Time `gorm:"column:attendance_appeal_updated_at;autoUpdateTime" json:"attendance_appeal_updated_at"`

	Attendance *attendanceModel.AttendanceModel `gorm:"foreignKey:AttendanceAppealAttendanceID;references:AttendanceID;constraint:OnDelete:CASCADE" json:"attendance,omitempty"`
}

func (AttendanceAppealModel) TableName() string { return "attendance_appeals" }

func (m *AttendanceAppealModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceAppealID == uuid.Nil {
		m.AttendanceAppealID = uuid.New()
	}
	return nil
}

func (m *AttendanceAppealModel) IsTerminal() bool {
	return m.AttendanceAppealStatus != AppealStatusPending
}
