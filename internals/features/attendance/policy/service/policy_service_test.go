package service

import (
	"testing"

	"github.com/google/uuid"

	attendanceModel "github.com/han020423/Attendance-management/internals/features/attendance/attendance/model"
	policyModel "github.com/han020423/Attendance-management/internals/features/attendance/policy/model"
	sessionModel "github.com/han020423/Attendance-management/internals/features/attendance/sessions/model"
	"github.com/han020423/Attendance-management/internals/testutil"
)

func TestComputeScore(t *testing.T) {
	defaults := policyModel.DefaultPolicy(uuid.New())

	tests := []struct {
		name   string
		late   int64
		absent int64
		policy policyModel.CoursePolicyModel
		want   float64
	}{
		{"tanpa pelanggaran", 0, 0, defaults, 20},
		{"3 terlambat 1 absen", 3, 1, defaults, 17.5},
		{"hanya terlambat di bawah ambang konversi", 1, 0, defaults, 19.5},
		{"konversi penuh tanpa sisa", 4, 0, defaults, 18},
		{
			"lates_for_absence nol berarti tidak pernah dikonversi",
			4, 0,
			policyModel.CoursePolicyModel{
				CoursePolicyLatePenaltyPoints:    0.5,
				CoursePolicyAbsencePenaltyPoints: 1,
				CoursePolicyLatesForAbsence:      0,
			},
			18,
		},
		{
			"skor tidak pernah negatif",
			0, 50,
			defaults,
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeScore(tt.late, tt.absent, tt.policy)
			if got != tt.want {
				t.Errorf("ComputeScore(%d, %d) = %v, want %v", tt.late, tt.absent, got, tt.want)
			}
		})
	}
}

func TestGetOrCreateDefaults(t *testing.T) {
	db := testutil.OpenDB(t)
	courseID := uuid.New()

	policy, err := GetOrCreate(db, courseID)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if policy.CoursePolicyLatePenaltyPoints != policyModel.DefaultLatePenaltyPoints ||
		policy.CoursePolicyAbsencePenaltyPoints != policyModel.DefaultAbsencePenaltyPoints ||
		policy.CoursePolicyLatesForAbsence != policyModel.DefaultLatesForAbsence {
		t.Errorf("kebijakan default salah: %+v", policy)
	}

	again, err := GetOrCreate(db, courseID)
	if err != nil {
		t.Fatalf("GetOrCreate kedua: %v", err)
	}
	if again.CoursePolicyID != policy.CoursePolicyID {
		t.Error("GetOrCreate membuat baris kedua untuk mata kuliah yang sama")
	}
}

func TestGetScoreCountsFromAttendance(t *testing.T) {
	db := testutil.OpenDB(t)
	instructorID := uuid.New()
	course := testutil.SeedCourse(t, db, instructorID)
	studentID := uuid.New()

	statuses := []int{
		attendanceModel.AttendanceStatusLate,
		attendanceModel.AttendanceStatusLate,
		attendanceModel.AttendanceStatusLate,
		attendanceModel.AttendanceStatusAbsent,
		attendanceModel.AttendanceStatusPresent,
	}
	for i, status := range statuses {
		session := testutil.SeedSession(t, db, course.CourseID, i+1, sessionModel.SessionStatusClosed)
		row := attendanceModel.AttendanceModel{
			AttendanceSessionID: session.ClassSessionID,
			AttendanceStudentID: studentID,
			AttendanceStatus:    status,
		}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("seed attendance: %v", err)
		}
	}

	report, err := GetScore(db, course.CourseID, studentID)
	if err != nil {
		t.Fatalf("GetScore: %v", err)
	}
	if report.LateCount != 3 || report.AbsentCount != 1 {
		t.Fatalf("hitungan salah: late=%d absent=%d", report.LateCount, report.AbsentCount)
	}
	if report.Score != 17.5 {
		t.Errorf("Score = %v, want 17.5", report.Score)
	}
}

func TestUpdatePolicyForbiddenForOtherInstructor(t *testing.T) {
	db := testutil.OpenDB(t)
	course := testutil.SeedCourse(t, db, uuid.New())

	v := 2.0
	_, err := Update(db, course.CourseID, uuid.New(), "INSTRUCTOR", PolicyPatch{AbsencePenaltyPoints: &v})
	if err != ErrForbidden {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}
