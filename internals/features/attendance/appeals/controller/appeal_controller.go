package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/han020423/Attendance-management/internals/features/attendance/appeals/dto"
	"github.com/han020423/Attendance-management/internals/features/attendance/appeals/service"
	notifService "github.com/han020423/Attendance-management/internals/features/notifications/service"
	helper "github.com/han020423/Attendance-management/internals/helpers"
)

type AppealController struct {
	DB       *gorm.DB
	Sink     notifService.Sink
	validate *validator.Validate
}

func NewAppealController(db *gorm.DB, sink notifService.Sink) *AppealController {
	return &AppealController{DB: db, Sink: sink, validate: validator.New()}
}

func appealError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrAppealNotFound),
		errors.Is(err, service.ErrAttendanceNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrAlreadyReviewed):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidDecision),
		errors.Is(err, service.ErrInvalidStatus):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses banding")
	}
}

/* ===================== MAHASISWA ===================== */
// POST /api/u/appeals
func (ctrl *AppealController) Create(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateAppealRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	created, err := service.Create(ctrl.DB, req.AttendanceID, studentID, req.Message, req.NewStatus)
	if err != nil {
		return appealError(c, err)
	}
	return helper.JsonCreated(c, "Banding terkirim", created)
}

// GET /api/u/appeals
func (ctrl *AppealController) ListMine(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	rows, err := service.ListMine(ctrl.DB, studentID)
	if err != nil {
		return appealError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

/* ===================== DOSEN ===================== */
// GET /api/t/courses/:courseId/appeals
func (ctrl *AppealController) ListPending(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID mata kuliah tidak valid")
	}
	rows, err := service.ListPendingForCourse(ctrl.DB, courseID)
	if err != nil {
		return appealError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// POST /api/t/appeals/:id/review
func (ctrl *AppealController) Review(c *fiber.Ctx) error {
	appealID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID banding tidak valid")
	}
	reviewerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ReviewAppealRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	reviewed, err := service.Review(ctrl.DB, ctrl.Sink, appealID, reviewerID, role, req.Decision, req.Comment)
	if err != nil {
		return appealError(c, err)
	}
	return helper.JsonUpdated(c, "Banding selesai ditinjau", reviewed)
}
