package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	sessionModel "github.com/han020423/Attendance-management/internals/features/attendance/sessions/model"
)

// HolidayCalendar dikonsultasi hanya saat generate jadwal.
type HolidayCalendar interface {
	IsHoliday(date time.Time) (bool, error)
}

// ScheduleSpec: parameter generate jadwal mingguan satu term.
type ScheduleSpec struct {
	CourseID  uuid.UUID
	StartDate time.Time
	Weeks     int
	DayOfWeek int // 0=Minggu .. 6=Sabtu
	StartTime string
	EndTime   string
}

// BuildWeeklySessions menyusun sesi mingguan tanpa menulis apa pun.
// Validasi gagal -> tidak ada satu baris pun yang dihasilkan.
// Tanggal yang jatuh di hari libur dibuat pre-cancelled (CANCELLED +
// is_holiday) dan tidak pernah bisa dibuka.
func BuildWeeklySessions(spec ScheduleSpec, cal HolidayCalendar) ([]sessionModel.ClassSessionModel, error) {
	if spec.Weeks < 1 {
		return nil, ErrInvalidWeekCount
	}
	if spec.DayOfWeek < 0 || spec.DayOfWeek > 6 {
		return nil, ErrInvalidDayOfWeek
	}
	if _, err := time.Parse("15:04", spec.StartTime); err != nil {
		return nil, ErrInvalidTimeFormat
	}
	if _, err := time.Parse("15:04", spec.EndTime); err != nil {
		return nil, ErrInvalidTimeFormat
	}

	start := time.Date(spec.StartDate.Year(), spec.StartDate.Month(), spec.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	// geser ke kemunculan pertama dayOfWeek pada/ setelah startDate
	offset := (spec.DayOfWeek - int(start.Weekday()) + 7) % 7
	first := start.AddDate(0, 0, offset)

	rows := make([]sessionModel.ClassSessionModel, 0, spec.Weeks)
	for i := 0; i < spec.Weeks; i++ {
		date := first.AddDate(0, 0, i*7)

		row := sessionModel.ClassSessionModel{
			ClassSessionCourseID: spec.CourseID,
			ClassSessionWeek:     i + 1,
			ClassSessionDate:     date,
			ClassSessionStartAt:  spec.StartTime,
			ClassSessionEndAt:    spec.EndTime,
			ClassSessionStatus:   sessionModel.SessionStatusScheduled,
		}

		if cal != nil {
			holiday, err := cal.IsHoliday(date)
			if err != nil {
				return nil, err
			}
			if holiday {
				row.ClassSessionIsHoliday = true
				row.ClassSessionStatus = sessionModel.SessionStatusCancelled
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ScheduleBulk menulis seluruh jadwal dalam satu transaksi (atomik).
func ScheduleBulk(db *gorm.DB, cal HolidayCalendar, spec ScheduleSpec) ([]sessionModel.ClassSessionModel, error) {
	rows, err := BuildWeeklySessions(spec, cal)
	if err != nil {
		return nil, err
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(rows, 100).Error
	}); err != nil {
		return nil, err
	}
	return rows, nil
}
