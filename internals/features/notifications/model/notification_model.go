package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationModel: notifikasi in-app durable per penerima.
// dedup_key opsional; unik supaya fan-out idempoten (OnConflict DoNothing).
type NotificationModel struct {
	NotificationID uuid.UUID `gorm:"type:uuid;primaryKey;column:notification_id" json:"notification_id"`

	NotificationUserID uuid.UUID `gorm:"type:uuid;not null;index;column:notification_user_id" json:"notification_user_id"`

	NotificationType    string  `gorm:"not null;column:notification_type" json:"notification_type"`
	NotificationMessage string  `gorm:"not null;column:notification_message" json:"notification_message"`
	NotificationLink    *string `gorm:"column:notification_link" json:"notification_link,omitempty"`

	NotificationIsRead bool `gorm:"not null;default:false;column:notification_is_read" json:"notification_is_read"`

	NotificationDedupKey *string `gorm:"uniqueIndex;column:notification_dedup_key" json:"-"`

	NotificationCreatedAt time.Time `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
	NotificationUpdatedAt time.Time `gorm:"column:notification_updated_at;autoUpdateTime" json:"notification_updated_at"`
}

func (NotificationModel) TableName() string { return "notifications" }

func (m *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if m.NotificationID == uuid.Nil {
		m.NotificationID = uuid.New()
	}
	return nil
}
