package dto

import "github.com/google/uuid"

// POST /api/u/sessions/:id/check-in
type CheckInRequest struct {
	Method string  `json:"method" validate:"required,oneof=PIN ELECTRONIC"`
	Pin    *string `json:"pin" validate:"omitempty,len=6,numeric"`
}

// PATCH /api/t/attendances/:id
type UpdateStatusRequest struct {
	Status int    `json:"status" validate:"min=0,max=4"`
	Reason string `json:"reason" validate:"required"`
}

// PUT /api/t/sessions/:id/attendances
type UpsertAttendanceRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    int       `json:"status" validate:"min=0,max=4"`
	Reason    string    `json:"reason" validate:"required"`
}
