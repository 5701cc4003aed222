package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HolidayModel: kalender hari libur, dikonsultasi saat generate jadwal sesi.
type HolidayModel struct {
	HolidayID uuid.UUID `gorm:"type:uuid;primaryKey;column:holiday_id" json:"holiday_id"`

	HolidayDate time.Time `gorm:"type:date;not null;uniqueIndex;column:holiday_date" json:"holiday_date"`
	HolidayName string    `gorm:"not null;column:holiday_name" json:"holiday_name"`

	HolidayCreatedAt time.Time `gorm:"column:holiday_created_at;autoCreateTime" json:"holiday_created_at"`
}

func (HolidayModel) TableName() string { return "holidays" }

func (m *HolidayModel) BeforeCreate(tx *gorm.DB) error {
	if m.HolidayID == uuid.Nil {
		m.HolidayID = uuid.New()
	}
	return nil
}
