package dto

import "github.com/google/uuid"

// POST /api/u/appeals
type CreateAppealRequest struct {
	AttendanceID uuid.UUID `json:"attendance_id" validate:"required"`
	Message      string    `json:"message" validate:"required"`
	NewStatus    *int      `json:"new_status" validate:"omitempty,min=0,max=4"`
}

// POST /api/t/appeals/:id/review
type ReviewAppealRequest struct {
	Decision string  `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
	Comment  *string `json:"comment"`
}
