package service

import (
	"time"

	"gorm.io/gorm"

	holidayModel "github.com/han020423/Attendance-management/internals/features/academic/holidays/model"
)

// GormCalendar membaca kalender libur dari tabel holidays.
type GormCalendar struct {
	DB *gorm.DB
}

func NewGormCalendar(db *gorm.DB) *GormCalendar {
	return &GormCalendar{DB: db}
}

func (c *GormCalendar) IsHoliday(date time.Time) (bool, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	var count int64
	if err := c.DB.Model(&holidayModel.HolidayModel{}).
		Where("holiday_date = ?", day).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
