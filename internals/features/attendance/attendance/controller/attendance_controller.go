package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/han020423/Attendance-management/internals/features/attendance/attendance/dto"
	"github.com/han020423/Attendance-management/internals/features/attendance/attendance/service"
	notifService "github.com/han020423/Attendance-management/internals/features/notifications/service"
	helper "github.com/han020423/Attendance-management/internals/helpers"
)

type AttendanceController struct {
	DB       *gorm.DB
	Sink     notifService.Sink
	validate *validator.Validate
}

func NewAttendanceController(db *gorm.DB, sink notifService.Sink) *AttendanceController {
	return &AttendanceController{DB: db, Sink: sink, validate: validator.New()}
}

func attendanceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrAttendanceNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotEnrolled),
		errors.Is(err, service.ErrForbidden):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidState):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPINMismatch):
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidStatus):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses presensi")
	}
}

/* ===================== CHECK-IN (mahasiswa) ===================== */
// POST /api/u/sessions/:id/check-in
func (ctrl *AttendanceController) CheckIn(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	row, err := service.CheckIn(ctrl.DB, sessionID, studentID, req.Method, req.Pin, time.Now().UTC())
	if err != nil {
		return attendanceError(c, err)
	}
	return helper.JsonOK(c, "Presensi tercatat", row)
}

// GET /api/u/courses/:courseId/attendance/me
func (ctrl *AttendanceController) MyAttendance(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID mata kuliah tidak valid")
	}
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	rows, err := service.GetMyAttendance(ctrl.DB, courseID, studentID)
	if err != nil {
		return attendanceError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

/* ===================== EDIT MANUAL (dosen) ===================== */
// PATCH /api/t/attendances/:id
func (ctrl *AttendanceController) UpdateStatus(c *fiber.Ctx) error {
	attendanceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID presensi tidak valid")
	}
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	row, err := service.UpdateStatus(ctrl.DB, attendanceID, actorID, role, req.Status, req.Reason)
	if err != nil {
		return attendanceError(c, err)
	}
	return helper.JsonUpdated(c, "Status presensi diperbarui", row)
}

// PUT /api/t/sessions/:id/attendances
func (ctrl *AttendanceController) Upsert(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpsertAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	row, err := service.UpsertByStudent(ctrl.DB, ctrl.Sink, sessionID, req.StudentID, actorID, role, req.Status, req.Reason)
	if err != nil {
		return attendanceError(c, err)
	}
	return helper.JsonUpdated(c, "Presensi mahasiswa diperbarui", row)
}
