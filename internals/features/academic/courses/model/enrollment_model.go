package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnrollmentModel adalah registry keanggotaan kelas; satu baris per
// (course, user). Dipakai seeding presensi & fan-out notifikasi.
type EnrollmentModel struct {
	EnrollmentID uuid.UUID `gorm:"type:uuid;primaryKey;column:enrollment_id" json:"enrollment_id"`

	EnrollmentCourseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_enrollments_course_user;column:enrollment_course_id" json:"enrollment_course_id"`
	EnrollmentUserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_enrollments_course_user;column:enrollment_user_id" json:"enrollment_user_id"`

	EnrollmentRole string `gorm:"not null;default:STUDENT;column:enrollment_role" json:"enrollment_role"`

	EnrollmentCreatedAt time.Time `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }

func (m *EnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.EnrollmentID == uuid.Nil {
		m.EnrollmentID = uuid.New()
	}
	return nil
}
