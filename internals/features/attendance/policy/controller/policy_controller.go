package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/han020423/Attendance-management/internals/features/attendance/policy/dto"
	"github.com/han020423/Attendance-management/internals/features/attendance/policy/service"
	helper "github.com/han020423/Attendance-management/internals/helpers"
)

type PolicyController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewPolicyController(db *gorm.DB) *PolicyController {
	return &PolicyController{DB: db, validate: validator.New()}
}

func policyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidPolicy):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses kebijakan")
	}
}

// GET /api/t/courses/:courseId/policy
func (ctrl *PolicyController) Get(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID mata kuliah tidak valid")
	}
	policy, err := service.GetOrCreate(ctrl.DB, courseID)
	if err != nil {
		return policyError(c, err)
	}
	return helper.JsonOK(c, "ok", policy)
}

// PATCH /api/t/courses/:courseId/policy
func (ctrl *PolicyController) Update(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID mata kuliah tidak valid")
	}
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpdatePolicyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	policy, err := service.Update(ctrl.DB, courseID, actorID, role, req.ToPatch())
	if err != nil {
		return policyError(c, err)
	}
	return helper.JsonUpdated(c, "Kebijakan diperbarui", policy)
}

// GET /api/u/courses/:courseId/score (skor milik sendiri)
func (ctrl *PolicyController) MyScore(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID mata kuliah tidak valid")
	}
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	report, err := service.GetScore(ctrl.DB, courseID, studentID)
	if err != nil {
		return policyError(c, err)
	}
	return helper.JsonOK(c, "ok", report)
}

// GET /api/t/courses/:courseId/scores/:studentId
func (ctrl *PolicyController) StudentScore(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID mata kuliah tidak valid")
	}
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID mahasiswa tidak valid")
	}

	report, err := service.GetScore(ctrl.DB, courseID, studentID)
	if err != nil {
		return policyError(c, err)
	}
	return helper.JsonOK(c, "ok", report)
}
