package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/han020423/Attendance-management/internals/features/attendance/excuses/dto"
	"github.com/han020423/Attendance-management/internals/features/attendance/excuses/service"
	notifService "github.com/han020423/Attendance-management/internals/features/notifications/service"
	helper "github.com/han020423/Attendance-management/internals/helpers"
)

type ExcuseController struct {
	DB       *gorm.DB
	Sink     notifService.Sink
	validate *validator.Validate
}

func NewExcuseController(db *gorm.DB, sink notifService.Sink) *ExcuseController {
	return &ExcuseController{DB: db, Sink: sink, validate: validator.New()}
}

func excuseError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrExcuseNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrNotEnrolled):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrAlreadyReviewed):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidDecision):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses pengajuan izin")
	}
}

/* ===================== MAHASISWA ===================== */
// POST /api/u/excuses
func (ctrl *ExcuseController) Create(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateExcuseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	created, err := service.Create(ctrl.DB, req.SessionID, studentID, req.ReasonText, req.ReasonCode, req.FileMeta())
	if err != nil {
		return excuseError(c, err)
	}
	return helper.JsonCreated(c, "Pengajuan izin terkirim", created)
}

// GET /api/u/excuses
func (ctrl *ExcuseController) ListMine(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	rows, err := service.ListMine(ctrl.DB, studentID)
	if err != nil {
		return excuseError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

/* ===================== DOSEN ===================== */
// GET /api/t/courses/:courseId/excuses
func (ctrl *ExcuseController) ListPending(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID mata kuliah tidak valid")
	}
	rows, err := service.ListPendingForCourse(ctrl.DB, courseID)
	if err != nil {
		return excuseError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// POST /api/t/excuses/:id/review
func (ctrl *ExcuseController) Review(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pengajuan tidak valid")
	}
	reviewerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ReviewExcuseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	reviewed, err := service.Review(ctrl.DB, ctrl.Sink, requestID, reviewerID, role, req.Decision, req.Comment)
	if err != nil {
		return excuseError(c, err)
	}
	return helper.JsonUpdated(c, "Pengajuan izin selesai ditinjau", reviewed)
}
