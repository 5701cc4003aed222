// file: internals/testutil/testutil.go
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "github.com/han020423/Attendance-management/internals/databases"
	courseModel "github.com/han020423/Attendance-management/internals/features/academic/courses/model"
	sessionModel "github.com/han020423/Attendance-management/internals/features/attendance/sessions/model"
)

// OpenDB membuka SQLite in-memory terisolasi per test (nama DB ikut nama
// test supaya pool koneksi berbagi memori yang sama) lalu migrasi skema.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("buka sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrasi: %v", err)
	}
	return db
}

// SeedCourse membuat satu mata kuliah dengan dosen pengampu tertentu.
func SeedCourse(t *testing.T, db *gorm.DB, instructorID uuid.UUID) *courseModel.CourseModel {
	t.Helper()

	course := courseModel.CourseModel{
		CourseTitle:        "Struktur Data",
		CourseCode:         "IF-201",
		CourseInstructorID: instructorID,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return &course
}

// SeedStudents mendaftarkan n mahasiswa baru ke satu mata kuliah.
func SeedStudents(t *testing.T, db *gorm.DB, courseID uuid.UUID, n int) []uuid.UUID {
	t.Helper()

	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		id := uuid.New()
		e := courseModel.EnrollmentModel{
			EnrollmentCourseID: courseID,
			EnrollmentUserID:   id,
			EnrollmentRole:     "STUDENT",
		}
		if err := db.Create(&e).Error; err != nil {
			t.Fatalf("seed enrollment: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

// SeedSession membuat satu sesi dengan status tertentu.
func SeedSession(t *testing.T, db *gorm.DB, courseID uuid.UUID, week int, status string) *sessionModel.ClassSessionModel {
	t.Helper()

	session := sessionModel.ClassSessionModel{
		ClassSessionCourseID: courseID,
		ClassSessionWeek:     week,
		ClassSessionDate:     time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, (week-1)*7),
		ClassSessionStartAt:  "09:00",
		ClassSessionEndAt:    "10:40",
		ClassSessionStatus:   status,
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return &session
}
