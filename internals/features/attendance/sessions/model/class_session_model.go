package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status lifecycle sesi. CANCELLED dipakai untuk sesi yang jatuh di hari libur.
const (
	SessionStatusScheduled = "SCHEDULED"
	SessionStatusOpen      = "OPEN"
	SessionStatusClosed    = "CLOSED"
	SessionStatusCancelled = "CANCELLED"
)

// Metode presensi yang didukung sesi.
const (
	AttendanceMethodElectronic = "ELECTRONIC"
	AttendanceMethodPIN        = "PIN"
)

// ClassSessionModel: satu pertemuan kelas pada tanggal tertentu.
// Invariant: pin_code terisi hanya saat status OPEN.
type ClassSessionModel struct {
	ClassSessionID uuid.UUID `gorm:"type:uuid;primaryKey;column:class_session_id" json:"class_session_id"`

	ClassSessionCourseID uuid.UUID `gorm:"type:uuid;not null;index;column:class_session_course_id" json:"class_session_course_id"`

	ClassSessionWeek    int       `gorm:"not null;column:class_session_week" json:"class_session_week"`
	ClassSessionDate    time.Time `gorm:"type:date;not null;column:class_session_date" json:"class_session_date"`
	ClassSessionStartAt string    `gorm:"type:time;not null;column:class_session_start_at" json:"class_session_start_at"` // HH:MM
	ClassSessionEndAt   string    `gorm:"type:time;not null;column:class_session_end_at" json:"class_session_end_at"`     // HH:MM
	ClassSessionRoom    *string   `gorm:"column:class_session_room" json:"class_session_room,omitempty"`

	ClassSessionAttendanceMethod string `gorm:"not null;default:ELECTRONIC;column:class_session_attendance_method" json:"class_session_attendance_method"`

	ClassSessionIsHoliday bool `gorm:"not null;default:false;column:class_session_is_holiday" json:"class_session_is_holiday"`
	ClassSessionIsMakeup  bool `gorm:"not null;default:false;column:class_session_is_makeup" json:"class_session_is_makeup"`

	ClassSessionStatus  string  `gorm:"not null;default:SCHEDULED;column:class_session_status" json:"class_session_status"`
	ClassSessionPinCode *string `gorm:"column:class_session_pin_code" json:"-"`

	ClassSessionCreatedAt time.Time `gorm:"column:class_session_created_at;autoCreateTime" json:"class_session_created_at"`
	ClassSessionUpdatedAt time.Time `gorm:"column:class_session_updated_at;autoUpdateTime" json:"class_session_updated_at"`
}

func (ClassSessionModel) TableName() string { return "class_sessions" }

func (m *ClassSessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassSessionID == uuid.Nil {
		m.ClassSessionID = uuid.New()
	}
	return nil
}

// StartTime menggabungkan tanggal sesi dengan jam mulai (HH:MM).
func (m *ClassSessionModel) StartTime() (time.Time, error) {
	tod, err := time.Parse("15:04", m.ClassSessionStartAt)
	if err != nil {
		return time.Time{}, err
	}
	d := m.ClassSessionDate
	return time.Date(d.Year(), d.Month(), d.Day(), tod.Hour(), tod.Minute(), 0, 0, time.UTC), nil
}
