package service

import "errors"

var (
	ErrSessionNotFound    = errors.New("sesi tidak ditemukan")
	ErrAttendanceNotFound = errors.New("data presensi tidak ditemukan")
	ErrNotEnrolled        = errors.New("anda tidak terdaftar pada sesi ini")
	ErrInvalidState       = errors.New("presensi sesi ini tidak sedang dibuka")
	ErrPINMismatch        = errors.New("PIN salah")
	ErrInvalidStatus      = errors.New("status presensi tidak dikenal")
	ErrForbidden          = errors.New("anda tidak berhak mengubah presensi ini")
)
