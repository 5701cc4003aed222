package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExcuseFileModel menyimpan metadata bukti (path/nama/mime). Blob-nya
// dikelola layanan file eksternal.
type ExcuseFileModel struct {
	ExcuseFileID uuid.UUID `gorm:"type:uuid;primaryKey;column:excuse_file_id" json:"excuse_file_id"`

	ExcuseFileExcuseID uuid.UUID `gorm:"type:uuid;not null;index;column:excuse_file_excuse_id" json:"excuse_file_excuse_id"`

	ExcuseFilePath         string `gorm:"not null;column:excuse_file_path" json:"excuse_file_path"`
	ExcuseFileOriginalName string `gorm:"not null;column:excuse_file_original_name" json:"excuse_file_original_name"`
	ExcuseFileMimeType     string `gorm:"not null;column:excuse_file_mime_type" json:"excuse_file_mime_type"`

	ExcuseFileCreatedAt time.Time `gorm:"column:excuse_file_created_at;autoCreateTime" json:"excuse_file_created_at"`
}

func (ExcuseFileModel) TableName() string { return "excuse_files" }

func (m *ExcuseFileModel) BeforeCreate(tx *gorm.DB) error {
	if m.ExcuseFileID == uuid.Nil {
		m.ExcuseFileID = uuid.New()
	}
	return nil
}
