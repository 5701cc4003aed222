package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	notifModel "github.com/han020423/Attendance-management/internals/features/notifications/model"
)

const listLimit = 50

// ListAndMarkRead memuat notifikasi terbaru satu user (maksimal 50) lalu
// menandai yang belum terbaca sebagai terbaca, meniru perilaku kotak masuk:
// membuka daftar berarti membacanya.
func ListAndMarkRead(db *gorm.DB, userID uuid.UUID) ([]notifModel.NotificationModel, error) {
	var rows []notifModel.NotificationModel

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("notification_user_id = ?", userID).
			Order("notification_created_at DESC").
			Limit(listLimit).
			Find(&rows).Error; err != nil {
			return err
		}
		return tx.Model(&notifModel.NotificationModel{}).
			Where("notification_user_id = ? AND notification_is_read = ?", userID, false).
			Update("notification_is_read", true).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountUnread: badge jumlah notifikasi belum terbaca.
func CountUnread(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	if err := db.Model(&notifModel.NotificationModel{}).
		Where("notification_user_id = ? AND notification_is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead menandai satu notifikasi milik user sebagai terbaca.
func MarkRead(db *gorm.DB, userID, notificationID uuid.UUID) error {
	return db.Model(&notifModel.NotificationModel{}).
		Where("notification_id = ? AND notification_user_id = ?", notificationID, userID).
		Update("notification_is_read", true).Error
}
