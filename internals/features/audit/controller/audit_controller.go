package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/han020423/Attendance-management/internals/features/audit/service"
	helper "github.com/han020423/Attendance-management/internals/helpers"
)

type AuditController struct {
	DB *gorm.DB
}

func NewAuditController(db *gorm.DB) *AuditController {
	return &AuditController{DB: db}
}

// GET /api/a/audit-logs?actor_id=&action=&target_type=&target_id=&page=&per_page=
func (ctrl *AuditController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	filter := service.ListFilter{
		Action:     strings.TrimSpace(c.Query("action")),
		TargetType: strings.TrimSpace(c.Query("target_type")),
	}
	if s := strings.TrimSpace(c.Query("actor_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "actor_id tidak valid")
		}
		filter.ActorID = &id
	}
	if s := strings.TrimSpace(c.Query("target_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "target_id tidak valid")
		}
		filter.TargetID = &id
	}

	rows, total, err := service.List(ctrl.DB, filter, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat audit log")
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "ok", rows, &pagination)
}
