package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/han020423/Attendance-management/internals/features/attendance/sessions/dto"
	"github.com/han020423/Attendance-management/internals/features/attendance/sessions/service"
	notifService "github.com/han020423/Attendance-management/internals/features/notifications/service"
	helper "github.com/han020423/Attendance-management/internals/helpers"
)

type SessionController struct {
	DB       *gorm.DB
	Sink     notifService.Sink
	Calendar service.HolidayCalendar
	validate *validator.Validate
}

func NewSessionController(db *gorm.DB, sink notifService.Sink, cal service.HolidayCalendar) *SessionController {
	return &SessionController{DB: db, Sink: sink, Calendar: cal, validate: validator.New()}
}

func sessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrCourseNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidState):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidWeekCount),
		errors.Is(err, service.ErrInvalidDayOfWeek),
		errors.Is(err, service.ErrInvalidTimeFormat):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses sesi")
	}
}

/* ===================== SCHEDULE BULK ===================== */
// POST /api/t/sessions/schedule-bulk
func (ctrl *SessionController) ScheduleBulk(c *fiber.Ctx) error {
	var req dto.ScheduleBulkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	spec, err := req.ToSpec()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal tidak valid")
	}

	rows, err := service.ScheduleBulk(ctrl.DB, ctrl.Calendar, spec)
	if err != nil {
		return sessionError(c, err)
	}
	return helper.JsonCreated(c, "Jadwal sesi berhasil dibuat", rows)
}

/* ===================== OPEN / CLOSE ===================== */
// POST /api/t/sessions/:id/open
func (ctrl *SessionController) Open(c *fiber.Ctx) error {
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

	var req dto.OpenSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	session, err := service.OpenCheckIn(ctrl.DB, ctrl.Sink, sessionID, actorID, role, req.Method)
	if err != nil {
		return sessionError(c, err)
	}
	return helper.JsonOK(c, "Presensi dibuka", dto.OpenSessionResponse{
		Session: session,
		PinCode: session.ClassSessionPinCode,
	})
}

// POST /api/t/sessions/:id/close
func (ctrl *SessionController) Close(c *fiber.Ctx) error {
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

	session, err := service.CloseCheckIn(ctrl.DB, sessionID, actorID, role)
	if err != nil {
		return sessionError(c, err)
	}
	return helper.JsonUpdated(c, "Presensi ditutup", session)
}

/* ===================== EDIT ===================== */
// PATCH /api/t/sessions/:id
func (ctrl *SessionController) Edit(c *fiber.Ctx) error {
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

	var req dto.EditSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	patch, err := req.ToPatch()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal tidak valid")
	}

	session, err := service.EditSession(ctrl.DB, sessionID, actorID, role, patch)
	if err != nil {
		return sessionError(c, err)
	}
	return helper.JsonUpdated(c, "Sesi diperbarui", session)
}

/* ===================== READ ===================== */
// GET /api/t/sessions/:id/summary
func (ctrl *SessionController) Summary(c *fiber.Ctx) error {
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

	summary, err := service.GetSessionSummary(ctrl.DB, sessionID, actorID, role)
	if err != nil {
		return sessionError(c, err)
	}
	return helper.JsonOK(c, "ok", summary)
}

// GET /api/u/courses/:courseId/sessions
func (ctrl *SessionController) ListByCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID mata kuliah tidak valid")
	}

	rows, err := service.ListCourseSessions(ctrl.DB, courseID)
	if err != nil {
		return sessionError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}
