package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	sessionModel "github.com/han020423/Attendance-management/internals/features/attendance/sessions/model"
)

// Status pengajuan izin. Terminal setelah APPROVED/REJECTED.
const (
	ExcuseStatusPending  = "PENDING"
	ExcuseStatusApproved = "APPROVED"
	ExcuseStatusRejected = "REJECTED"
)

// ExcuseRequestModel: pengajuan izin/dispensasi untuk satu sesi.
type ExcuseRequestModel struct {
	ExcuseRequestID uuid.UUID `gorm:"type:uuid;primaryKey;column:excuse_request_id" json:"excuse_request_id"`

	ExcuseRequestSessionID uuid.UUID `gorm:"type:uuid;not null;index;column:excuse_request_session_id" json:"excuse_request_session_id"`
	ExcuseRequestStudentID uuid.UUID `gorm:"type:uuid;not null;index;column:excuse_request_student_id" json:"excuse_request_student_id"`

	ExcuseRequestStatus     string  `gorm:"not null;default:PENDING;column:excuse_request_status" json:"excuse_request_status"`
	ExcuseRequestReasonText string  `gorm:"not null;column:excuse_request_reason_text" json:"excuse_request_reason_text"`
	ExcuseRequestReasonCode *string `gorm:"column:excuse_request_reason_code" json:"excuse_request_reason_code,omitempty"`

	ExcuseRequestReviewedBy    *uuid.UUID `gorm:"type:uuid;column:excuse_request_reviewed_by" json:"excuse_request_reviewed_by,omitempty"`
	ExcuseRequestReviewComment *string    `gorm:"column:excuse_request_review_comment" json:"excuse_request_review_comment,omitempty"`

	ExcuseRequestCreatedAt time.Time `gorm:"column:excuse_request_created_at;autoCreateTime" json:"excuse_request_created_at"`
	ExcuseRequestUpdatedAt time.Time `gorm:"column:excuse_request_updated_at;autoUpdateTime" json:"excuse_request_updated_at"`

	Session *sessionModel.ClassSessionModel `gorm:"foreignKey:ExcuseRequestSessionID;references:ClassSessionID;constraint:OnDelete:CASCADE" json:"session,omitempty"`
	Files   []ExcuseFileModel               `gorm:"foreignKey:ExcuseFileExcuseID;references:ExcuseRequestID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
}

func (ExcuseRequestModel) TableName() string { return "excuse_requests" }

func (m *ExcuseRequestModel) BeforeCreate(tx *gorm.DB) error {
	if m.ExcuseRequestID == uuid.Nil {
		m.ExcuseRequestID = uuid.New()
	}
	return nil
}

func (m *ExcuseRequestModel) IsTerminal() bool {
	return m.ExcuseRequestStatus != ExcuseStatusPending
}
