package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseModel hanya dipakai untuk query (kepemilikan dosen, judul untuk
// notifikasi). CRUD mata kuliah ada di layanan lain.
type CourseModel struct {
	CourseID uuid.UUID `gorm:"type:uuid;primaryKey;column:course_id" json:"course_id"`

	CourseTitle   string  `gorm:"not null;column:course_title" json:"course_title"`
	CourseCode    string  `gorm:"column:course_code" json:"course_code"`
	CourseSection *string `gorm:"column:course_section" json:"course_section,omitempty"`

	CourseInstructorID uuid.UUID `gorm:"type:uuid;not null;index;column:course_instructor_id" json:"course_instructor_id"`
	CourseSemesterID   *uuid.UUID `gorm:"type:uuid;column:course_semester_id" json:"course_semester_id,omitempty"`

	CourseCreatedAt time.Time `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`
}

func (CourseModel) TableName() string { return "courses" }

func (m *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseID == uuid.Nil {
		m.CourseID = uuid.New()
	}
	return nil
}
