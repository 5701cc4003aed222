package dto

import (
	"time"

	"github.com/google/uuid"

	sessionModel "github.com/han020423/Attendance-management/internals/features/attendance/sessions/model"
	"github.com/han020423/Attendance-management/internals/features/attendance/sessions/service"
)

// POST /api/t/sessions/schedule-bulk
type ScheduleBulkRequest struct {
	CourseID  uuid.UUID `json:"course_id" validate:"required"`
	StartDate string    `json:"start_date" validate:"required,datetime=2006-01-02"`
	Weeks     int       `json:"weeks" validate:"required,min=1"`
	DayOfWeek int       `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string    `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string    `json:"end_time" validate:"required,datetime=15:04"`
}

func (r *ScheduleBulkRequest) ToSpec() (service.ScheduleSpec, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return service.ScheduleSpec{}, err
	}
	return service.ScheduleSpec{
		CourseID:  r.CourseID,
		StartDate: start,
		Weeks:     r.Weeks,
		DayOfWeek: r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}, nil
}

// POST /api/t/sessions/:id/open
type OpenSessionRequest struct {
	Method string `json:"method" validate:"required,oneof=PIN ELECTRONIC"`
}

// Respons open menyertakan PIN untuk ditampilkan dosen; di luar ini PIN
// tidak pernah diserialisasi.
type OpenSessionResponse struct {
	Session *sessionModel.ClassSessionModel `json:"session"`
	PinCode *string                         `json:"pin_code,omitempty"`
}

// PATCH /api/t/sessions/:id
type EditSessionRequest struct {
	Date     *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartAt  *string `json:"start_at" validate:"omitempty,datetime=15:04"`
	EndAt    *string `json:"end_at" validate:"omitempty,datetime=15:04"`
	Room     *string `json:"room"`
	IsMakeup *bool   `json:"is_makeup"`
	Method   *string `json:"method" validate:"omitempty,oneof=PIN ELECTRONIC"`
}

func (r *EditSessionRequest) ToPatch() (service.SessionPatch, error) {
	patch := service.SessionPatch{
		StartAt:  r.StartAt,
		EndAt:    r.EndAt,
		Room:     r.Room,
		IsMakeup: r.IsMakeup,
		Method:   r.Method,
	}
	if r.Date != nil {
		d, err := time.Parse("2006-01-02", *r.Date)
		if err != nil {
			return patch, err
		}
		patch.Date = &d
	}
	return patch, nil
}
