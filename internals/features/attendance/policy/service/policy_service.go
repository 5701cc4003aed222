package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/han020423/Attendance-management/internals/constants"
	courseModel "github.com/han020423/Attendance-management/internals/features/academic/courses/model"
	attendanceModel "github.com/han020423/Attendance-management/internals/features/attendance/attendance/model"
	policyModel "github.com/han020423/Attendance-management/internals/features/attendance/policy/model"
	auditService "github.com/han020423/Attendance-management/internals/features/audit/service"
	helper "github.com/han020423/Attendance-management/internals/helpers"
)

var (
	ErrCourseNotFound = errors.New("mata kuliah tidak ditemukan")
	ErrInvalidPolicy  = errors.New("nilai kebijakan tidak boleh negatif")
	ErrForbidden      = errors.New("anda tidak berhak mengubah kebijakan ini")
)

// Skor kehadiran maksimum per mata kuliah.
const MaxScore = 20.0

// ComputeScore menghitung skor akhir dari jumlah terlambat & absen.
// latesForAbsence <= 0 berarti keterlambatan tidak pernah dikonversi.
// Hasil tidak pernah negatif.
func ComputeScore(lateCount, absentCount int64, p policyModel.CoursePolicyModel) float64 {
	converted := absentCount
	remaining := lateCount
	if p.CoursePolicyLatesForAbsence > 0 {
		n := int64(p.CoursePolicyLatesForAbsence)
		converted += lateCount / n
		remaining = lateCount % n
	}
	penalty := float64(converted)*p.CoursePolicyAbsencePenaltyPoints +
		float64(remaining)*p.CoursePolicyLatePenaltyPoints
	score := MaxScore - penalty
	if score < 0 {
		return 0
	}
	return score
}

// GetOrCreate mengembalikan kebijakan mata kuliah, membuatkan default
// kalau belum ada.
func GetOrCreate(db *gorm.DB, courseID uuid.UUID) (*policyModel.CoursePolicyModel, error) {
	policy := policyModel.DefaultPolicy(courseID)
	if err := db.
		Where("course_policy_course_id = ?", courseID).
		FirstOrCreate(&policy).Error; err != nil {
		return nil, err
	}
	return &policy, nil
}

// CountLateAbsent menghitung jumlah LATE dan ABSENT satu mahasiswa pada satu
// mata kuliah.
func CountLateAbsent(db *gorm.DB, courseID, studentID uuid.UUID) (late, absent int64, err error) {
	base := func(status int) *gorm.DB {
		return db.Model(&attendanceModel.AttendanceModel{}).
			Joins("JOIN class_sessions ON class_sessions.class_session_id = attendances.attendance_session_id").
			Where("class_sessions.class_session_course_id = ? AND attendances.attendance_student_id = ? AND attendances.attendance_status = ?",
				courseID, studentID, status)
	}
	if err = base(attendanceModel.AttendanceStatusLate).Count(&late).Error; err != nil {
		return 0, 0, err
	}
	if err = base(attendanceModel.AttendanceStatusAbsent).Count(&absent).Error; err != nil {
		return 0, 0, err
	}
	return late, absent, nil
}

// ScoreReport: rincian skor satu mahasiswa.
type ScoreReport struct {
	CourseID    uuid.UUID                     `json:"course_id"`
	StudentID   uuid.UUID                     `json:"student_id"`
	LateCount   int64                         `json:"late_count"`
	AbsentCount int64                         `json:"absent_count"`
	MaxScore    float64                       `json:"max_score"`
	Score       float64                       `json:"score"`
	Policy      policyModel.CoursePolicyModel `json:"policy"`
}

// GetScore memuat kebijakan (auto-create) lalu menghitung skor mahasiswa.
func GetScore(db *gorm.DB, courseID, studentID uuid.UUID) (*ScoreReport, error) {
	policy, err := GetOrCreate(db, courseID)
	if err != nil {
		return nil, err
	}
	late, absent, err := CountLateAbsent(db, courseID, studentID)
	if err != nil {
		return nil, err
	}
	return &ScoreReport{
		CourseID:    courseID,
		StudentID:   studentID,
		LateCount:   late,
		AbsentCount: absent,
		MaxScore:    MaxScore,
		Score:       ComputeScore(late, absent, *policy),
		Policy:      *policy,
	}, nil
}

// PolicyPatch: field kebijakan yang diubah (pointer = tidak diubah).
type PolicyPatch struct {
	LatePenaltyPoints    *float64
	AbsencePenaltyPoints *float64
	LatesForAbsence      *int
}

// Update mengubah kebijakan mata kuliah. Hanya dosen pengampu (atau admin);
// setiap perubahan diaudit dengan snapshot sebelum/sesudah.
func Update(db *gorm.DB, courseID, actorID uuid.UUID, role string, patch PolicyPatch) (*policyModel.CoursePolicyModel, error) {
	if patch.LatePenaltyPoints != nil && *patch.LatePenaltyPoints < 0 {
		return nil, ErrInvalidPolicy
	}
	if patch.AbsencePenaltyPoints != nil && *patch.AbsencePenaltyPoints < 0 {
		return nil, ErrInvalidPolicy
	}
	if patch.LatesForAbsence != nil && *patch.LatesForAbsence < 0 {
		return nil, ErrInvalidPolicy
	}

	var policy *policyModel.CoursePolicyModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var course courseModel.CourseModel
		if err := tx.First(&course, "course_id = ?", courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}
		if !helper.CanModerateCourse(role, actorID, course.CourseInstructorID) {
			return ErrForbidden
		}

		var err error
		policy, err = GetOrCreate(tx, courseID)
		if err != nil {
			return err
		}

		before := map[string]any{
			"late_penalty_points":    policy.CoursePolicyLatePenaltyPoints,
			"absence_penalty_points": policy.CoursePolicyAbsencePenaltyPoints,
			"lates_for_absence":      policy.CoursePolicyLatesForAbsence,
		}

		updates := map[string]any{}
		if patch.LatePenaltyPoints != nil {
			policy.CoursePolicyLatePenaltyPoints = *patch.LatePenaltyPoints
			updates["course_policy_late_penalty_points"] = *patch.LatePenaltyPoints
		}
		if patch.AbsencePenaltyPoints != nil {
			policy.CoursePolicyAbsencePenaltyPoints = *patch.AbsencePenaltyPoints
			updates["course_policy_absence_penalty_points"] = *patch.AbsencePenaltyPoints
		}
		if patch.LatesForAbsence != nil {
			policy.CoursePolicyLatesForAbsence = *patch.LatesForAbsence
			updates["course_policy_lates_for_absence"] = *patch.LatesForAbsence
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(policy).Updates(updates).Error; err != nil {
			return err
		}

		after := map[string]any{
			"late_penalty_points":    policy.CoursePolicyLatePenaltyPoints,
			"absence_penalty_points": policy.CoursePolicyAbsencePenaltyPoints,
			"lates_for_absence":      policy.CoursePolicyLatesForAbsence,
		}
		return auditService.Log(tx, actorID, constants.AuditUpdateCoursePolicy,
			"course_policy", &policy.CoursePolicyID,
			map[string]any{"before": before, "after": after})
	})
	if err != nil {
		return nil, err
	}
	return policy, nil
}
