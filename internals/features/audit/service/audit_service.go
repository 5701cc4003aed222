package service

import (
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	auditModel "github.com/han020423/Attendance-management/internals/features/audit/model"
)

// Log menulis satu entri audit di dalam transaksi pemanggil. Gagal menulis
// audit harus menggagalkan seluruh transaksi (tidak ada mutasi tanpa jejak).
func Log(tx *gorm.DB, actorID uuid.UUID, action, targetType string, targetID *uuid.UUID, meta map[string]any) error {
	entry := auditModel.AuditLogModel{
		AuditLogActorID:    actorID,
		AuditLogAction:     action,
		AuditLogTargetType: targetType,
		AuditLogTargetID:   targetID,
	}
	if meta != nil {
		raw, err := sonic.Marshal(meta)
		if err != nil {
			return err
		}
		entry.AuditLogMeta = datatypes.JSON(raw)
	}
	return tx.Create(&entry).Error
}
