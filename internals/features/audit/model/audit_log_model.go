package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLogModel: jejak audit append-only. Tidak pernah di-update atau
// dihapus; hanya created_at.
type AuditLogModel struct {
	AuditLogID uuid.UUID `gorm:"type:uuid;primaryKey;column:audit_log_id" json:"audit_log_id"`

	AuditLogActorID uuid.UUID `gorm:"type:uuid;not null;index;column:audit_log_actor_id" json:"audit_log_actor_id"`
	AuditLogAction  string    `gorm:"not null;column:audit_log_action" json:"audit_log_action"`

	AuditLogTargetType string     `gorm:"index;column:audit_log_target_type" json:"audit_log_target_type"`
	AuditLogTargetID   *uuid.UUID `gorm:"type:uuid;index;column:audit_log_target_id" json:"audit_log_target_id,omitempty"`

	AuditLogMeta datatypes.JSON `gorm:"column:audit_log_meta" json:"audit_log_meta,omitempty"`

	AuditLogCreatedAt time.Time `gorm:"column:audit_log_created_at;autoCreateTime" json:"audit_log_created_at"`
}

func (AuditLogModel) TableName() string { return "audit_logs" }

func (m *AuditLogModel) BeforeCreate(tx *gorm.DB) error {
	if m.AuditLogID == uuid.Nil {
		m.AuditLogID = uuid.New()
	}
	return nil
}
