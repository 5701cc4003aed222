package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditModel "github.com/han020423/Attendance-management/internals/features/audit/model"
)

// ListFilter: filter opsional listing audit (nil/"" = abaikan).
type ListFilter struct {
	ActorID    *uuid.UUID
	Action     string
	TargetType string
	TargetID   *uuid.UUID
}

// List mengembalikan entri audit terbaru dulu, dengan pagination.
func List(db *gorm.DB, f ListFilter, offset, limit int) ([]auditModel.AuditLogModel, int64, error) {
	q := db.Model(&auditModel.AuditLogModel{})
	if f.ActorID != nil {
		q = q.Where("audit_log_actor_id = ?", *f.ActorID)
	}
	if f.Action != "" {
		q = q.Where("audit_log_action = ?", f.Action)
	}
	if f.TargetType != "" {
		q = q.Where("audit_log_target_type = ?", f.TargetType)
	}
	if f.TargetID != nil {
		q = q.Where("audit_log_target_id = ?", *f.TargetID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []auditModel.AuditLogModel
	if err := q.
		Order("audit_log_created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
