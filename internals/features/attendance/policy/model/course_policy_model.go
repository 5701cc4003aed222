package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Nilai default kebijakan saat auto-create.
const (
	DefaultLatePenaltyPoints    = 0.5
	DefaultAbsencePenaltyPoints = 1.0
	DefaultLatesForAbsence      = 2
)

// CoursePolicyModel: satu kebijakan penalti per mata kuliah.
// lates_for_absence = 0 berarti keterlambatan tidak pernah dikonversi
// menjadi absen.
type CoursePolicyModel struct {
	CoursePolicyID uuid.UUID `gorm:"type:uuid;primaryKey;column:course_policy_id" json:"course_policy_id"`

	CoursePolicyCourseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:course_policy_course_id" json:"course_policy_course_id"`

	CoursePolicyLatePenaltyPoints    float64 `gorm:"not null;default:0.5;column:course_policy_late_penalty_points" json:"course_policy_late_penalty_points"`
	CoursePolicyAbsencePenaltyPoints float64 `gorm:"not null;default:1;column:course_policy_absence_penalty_points" json:"course_policy_absence_penalty_points"`
	CoursePolicyLatesForAbsence      int     `gorm:"not null;default:2;column:course_policy_lates_for_absence" json:"course_policy_lates_for_absence"`

	CoursePolicyCreatedAt time.Time `gorm:"column:course_policy_created_at;autoCreateTime" json:"course_policy_created_at"`
	CoursePolicyUpdatedAt time.Time `gorm:"column:course_policy_updated_at;autoUpdateTime" json:"course_policy_updated_at"`
}

func (CoursePolicyModel) TableName() string { return "course_policies" }

func (m *CoursePolicyModel) BeforeCreate(tx *gorm.DB) error {
	if m.CoursePolicyID == uuid.Nil {
		m.CoursePolicyID = uuid.New()
	}
	return nil
}

// DefaultPolicy membangun kebijakan default untuk satu mata kuliah.
func DefaultPolicy(courseID uuid.UUID) CoursePolicyModel {
	return CoursePolicyModel{
		CoursePolicyCourseID:             courseID,
		CoursePolicyLatePenaltyPoints:    DefaultLatePenaltyPoints,
		CoursePolicyAbsencePenaltyPoints: DefaultAbsencePenaltyPoints,
		CoursePolicyLatesForAbsence:      DefaultLatesForAbsence,
	}
}
