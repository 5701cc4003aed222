package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	notifModel "github.com/han020423/Attendance-management/internals/features/notifications/model"
)

// Sink adalah kanal push best-effort ke klien yang sedang terhubung.
// Kegagalan publish tidak boleh membatalkan transaksi apa pun; panggil
// hanya SETELAH commit.
type Sink interface {
	Publish(userID uuid.UUID, payload any)
}

// Payload adalah bentuk yang dikirim lewat Sink (ringkas, tanpa ID baris).
type Payload struct {
	Type    string  `json:"type"`
	Message string  `json:"message"`
	Link    *string `json:"link,omitempty"`
}

// CreateInTx menulis satu notifikasi durable di dalam transaksi pemanggil.
func CreateInTx(tx *gorm.DB, n *notifModel.NotificationModel) error {
	return tx.Create(n).Error
}

// CreateDedupInTx menulis notifikasi dengan dedup key unik; baris yang sudah
// ada dilewati. created=false berarti notifikasi pernah dikirim sebelumnya.
func CreateDedupInTx(tx *gorm.DB, n *notifModel.NotificationModel) (created bool, err error) {
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "notification_dedup_key"}},
		DoNothing: true,
	}).Create(n)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Push mengirim payload lewat sink kalau ada. Best-effort: sink nil atau
// penerima offline bukan error.
func Push(sink Sink, userID uuid.UUID, p Payload) {
	if sink == nil {
		return
	}
	sink.Publish(userID, p)
}
