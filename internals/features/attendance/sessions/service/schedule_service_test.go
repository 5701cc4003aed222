package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	holidayModel "github.com/han020423/Attendance-management/internals/features/academic/holidays/model"
	holidayService "github.com/han020423/Attendance-management/internals/features/academic/holidays/service"
	sessionModel "github.com/han020423/Attendance-management/internals/features/attendance/sessions/model"
	"github.com/han020423/Attendance-management/internals/testutil"
)

type fixedCalendar map[string]bool

func (c fixedCalendar) IsHoliday(date time.Time) (bool, error) {
	return c[date.Format("2006-01-02")], nil
}

func baseSpec() ScheduleSpec {
	return ScheduleSpec{
		CourseID:  uuid.New(),
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), // Senin
		Weeks:     15,
		DayOfWeek: 1, // Senin
		StartTime: "09:00",
		EndTime:   "10:40",
	}
}

func TestBuildWeeklySessionsHolidayStart(t *testing.T) {
	spec := baseSpec()
	cal := fixedCalendar{"2026-03-02": true}

	rows, err := BuildWeeklySessions(spec, cal)
	if err != nil {
		t.Fatalf("BuildWeeklySessions: %v", err)
	}
	if len(rows) != 15 {
		t.Fatalf("len(rows) = %d, want 15", len(rows))
	}

	if rows[0].ClassSessionStatus != sessionModel.SessionStatusCancelled || !rows[0].ClassSessionIsHoliday {
		t.Errorf("sesi pertama harus pre-cancelled: %+v", rows[0])
	}
	for i, row := range rows {
		if row.ClassSessionWeek != i+1 {
			t.Errorf("week[%d] = %d", i, row.ClassSessionWeek)
		}
		wantDate := spec.StartDate.AddDate(0, 0, i*7)
		if !row.ClassSessionDate.Equal(wantDate) {
			t.Errorf("date[%d] = %v, want %v (jarak mingguan harus terjaga)", i, row.ClassSessionDate, wantDate)
		}
		if i > 0 && row.ClassSessionStatus != sessionModel.SessionStatusScheduled {
			t.Errorf("status[%d] = %s", i, row.ClassSessionStatus)
		}
	}
}

func TestBuildWeeklySessionsAnchorsToFirstDayOfWeek(t *testing.T) {
	spec := baseSpec()
	spec.StartDate = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC) // Rabu
	spec.DayOfWeek = 5                                           // Jumat
	spec.Weeks = 2

	rows, err := BuildWeeklySessions(spec, nil)
	if err != nil {
		t.Fatalf("BuildWeeklySessions: %v", err)
	}
	want := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	if !rows[0].ClassSessionDate.Equal(want) {
		t.Errorf("sesi pertama = %v, want %v", rows[0].ClassSessionDate, want)
	}
}

func TestBuildWeeklySessionsRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ScheduleSpec)
		want   error
	}{
		{"minggu nol", func(s *ScheduleSpec) { s.Weeks = 0 }, ErrInvalidWeekCount},
		{"minggu negatif", func(s *ScheduleSpec) { s.Weeks = -3 }, ErrInvalidWeekCount},
		{"hari di luar 0-6", func(s *ScheduleSpec) { s.DayOfWeek = 7 }, ErrInvalidDayOfWeek},
		{"jam mulai rusak", func(s *ScheduleSpec) { s.StartTime = "9 pagi" }, ErrInvalidTimeFormat},
		{"jam selesai rusak", func(s *ScheduleSpec) { s.EndTime = "25:00" }, ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := baseSpec()
			tt.mutate(&spec)
			rows, err := BuildWeeklySessions(spec, nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if rows != nil {
				t.Error("input tidak valid tidak boleh menghasilkan baris")
			}
		})
	}
}

func TestScheduleBulkAtomicOnInvalidInput(t *testing.T) {
	db := testutil.OpenDB(t)
	spec := baseSpec()
	spec.Weeks = 0

	if _, err := ScheduleBulk(db, nil, spec); !errors.Is(err, ErrInvalidWeekCount) {
		t.Fatalf("err = %v, want ErrInvalidWeekCount", err)
	}

	var count int64
	if err := db.Model(&sessionModel.ClassSessionModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("tidak boleh ada baris tertulis, dapat %d", count)
	}
}

func TestScheduleBulkUsesHolidayTable(t *testing.T) {
	db := testutil.OpenDB(t)
	if err := db.Create(&holidayModel.HolidayModel{
		HolidayDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		HolidayName: "Hari Raya Nyepi",
	}).Error; err != nil {
		t.Fatalf("seed holiday: %v", err)
	}

	spec := baseSpec()
	spec.Weeks = 3
	rows, err := ScheduleBulk(db, holidayService.NewGormCalendar(db), spec)
	if err != nil {
		t.Fatalf("ScheduleBulk: %v", err)
	}

	if rows[1].ClassSessionStatus != sessionModel.SessionStatusCancelled || !rows[1].ClassSessionIsHoliday {
		t.Errorf("pekan kedua jatuh di hari libur, harus CANCELLED: %+v", rows[1])
	}
	if rows[0].ClassSessionStatus != sessionModel.SessionStatusScheduled ||
		rows[2].ClassSessionStatus != sessionModel.SessionStatusScheduled {
		t.Error("pekan lain harus tetap SCHEDULED")
	}
}
