package dto

import "github.com/han020423/Attendance-management/internals/features/attendance/policy/service"

// PATCH /api/t/courses/:courseId/policy
type UpdatePolicyRequest struct {
	LatePenaltyPoints    *float64 `json:"late_penalty_points" validate:"omitempty,min=0"`
	AbsencePenaltyPoints *float64 `json:"absence_penalty_points" validate:"omitempty,min=0"`
	LatesForAbsence      *int     `json:"lates_for_absence" validate:"omitempty,min=0"`
}

func (r *UpdatePolicyRequest) ToPatch() service.PolicyPatch {
	return service.PolicyPatch{
		LatePenaltyPoints:    r.LatePenaltyPoints,
		AbsencePenaltyPoints: r.AbsencePenaltyPoints,
		LatesForAbsence:      r.LatesForAbsence,
	}
}
