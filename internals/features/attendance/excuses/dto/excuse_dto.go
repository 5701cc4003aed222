package dto

import (
	"github.com/google/uuid"

	"github.com/han020423/Attendance-management/internals/features/attendance/excuses/service"
)

// Metadata berkas bukti yang sudah diunggah ke layanan file.
type ExcuseFileMeta struct {
	Path         string `json:"path" validate:"required"`
	OriginalName string `json:"original_name" validate:"required"`
	MimeType     string `json:"mime_type" validate:"required"`
}

// POST /api/u/excuses
type CreateExcuseRequest struct {
	SessionID  uuid.UUID       `json:"session_id" validate:"required"`
	ReasonText string          `json:"reason_text" validate:"required"`
	ReasonCode *string         `json:"reason_code"`
	File       *ExcuseFileMeta `json:"file" validate:"omitempty"`
}

func (r *CreateExcuseRequest) FileMeta() *service.FileMeta {
	if r.File == nil {
		return nil
	}
	return &service.FileMeta{
		Path:         r.File.Path,
		OriginalName: r.File.OriginalName,
		MimeType:     r.File.MimeType,
	}
}

// POST /api/t/excuses/:id/review
type ReviewExcuseRequest struct {
	Decision string  `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
	Comment  *string `json:"comment"`
}
