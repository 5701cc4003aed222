package helper

import (
	"github.com/google/uuid"

	"github.com/han020423/Attendance-management/internals/constants"
)

// CanModerateCourse: admin boleh semua; dosen hanya mata kuliahnya sendiri.
func CanModerateCourse(role string, actorID, instructorID uuid.UUID) bool {
	if role == constants.RoleAdmin {
		return true
	}
	return role == constants.RoleInstructor && actorID == instructorID
}
