package service

import "errors"

var (
	ErrSessionNotFound   = errors.New("sesi tidak ditemukan")
	ErrForbidden         = errors.New("anda tidak berhak mengelola sesi ini")
	ErrCourseNotFound    = errors.New("mata kuliah tidak ditemukan")
	ErrInvalidState      = errors.New("sesi tidak dalam status yang sah untuk operasi ini")
	ErrInvalidWeekCount  = errors.New("jumlah minggu harus lebih dari 0")
	ErrInvalidDayOfWeek  = errors.New("hari dalam minggu harus 0-6")
	ErrInvalidTimeFormat = errors.New("format jam harus HH:MM")
)
