package service

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/han020423/Attendance-management/internals/constants"
	courseModel "github.com/han020423/Attendance-management/internals/features/academic/courses/model"
	attendanceModel "github.com/han020423/Attendance-management/internals/features/attendance/attendance/model"
	sessionModel "github.com/han020423/Attendance-management/internals/features/attendance/sessions/model"
	notifModel "github.com/han020423/Attendance-management/internals/features/notifications/model"
	notifService "github.com/han020423/Attendance-management/internals/features/notifications/service"
	helper "github.com/han020423/Attendance-management/internals/helpers"
)

const seedBatchSize = 500

// GeneratePIN menghasilkan PIN 6 digit (boleh leading zero).
func GeneratePIN() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

func findSessionWithCourse(tx *gorm.DB, sessionID uuid.UUID) (*sessionModel.ClassSessionModel, *courseModel.CourseModel, error) {
	var session sessionModel.ClassSessionModel
	if err := tx.First(&session, "class_session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}

	var course courseModel.CourseModel
	if err := tx.First(&course, "course_id = ?", session.ClassSessionCourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCourseNotFound
		}
		return nil, nil, err
	}
	return &session, &course, nil
}

// OpenCheckIn membuka presensi satu sesi: generate PIN baru (metode PIN),
// seed baris ABSENT untuk seluruh mahasiswa terdaftar, dan tulis notifikasi
// ATTENDANCE_OPEN. Seluruhnya satu transaksi; buka ulang aman diulang karena
// seeding & notifikasi idempoten. Push SSE dikirim setelah commit.
func OpenCheckIn(db *gorm.DB, sink notifService.Sink, sessionID, actorID uuid.UUID, role, method string) (*sessionModel.ClassSessionModel, error) {
	var (
		session *sessionModel.ClassSessionModel
		course  *courseModel.CourseModel
		payload notifService.Payload
		notify  []uuid.UUID
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		session, course, err = findSessionWithCourse(tx, sessionID)
		if err != nil {
			return err
		}
		if !helper.CanModerateCourse(role, actorID, course.CourseInstructorID) {
			return ErrForbidden
		}
		// sesi hari libur tidak pernah bisa dibuka
		if session.ClassSessionStatus == sessionModel.SessionStatusCancelled {
			return ErrInvalidState
		}

		// PIN selalu dibuat saat buka, apa pun metodenya: sesi OPEN wajib
		// punya pin_code (metode ELECTRONIC hanya tidak memakainya).
		pin := GeneratePIN()
		session.ClassSessionStatus = sessionModel.SessionStatusOpen
		session.ClassSessionAttendanceMethod = method
		session.ClassSessionPinCode = &pin
		if err := tx.Model(session).Updates(map[string]any{
			"class_session_status":            session.ClassSessionStatus,
			"class_session_attendance_method": session.ClassSessionAttendanceMethod,
			"class_session_pin_code":          session.ClassSessionPinCode,
		}).Error; err != nil {
			return err
		}

		link := fmt.Sprintf("/courses/%s", course.CourseID)
		payload = notifService.Payload{
			Type:    constants.NotifAttendanceOpen,
			Message: fmt.Sprintf("[%s] Presensi pekan ke-%d telah dibuka.", course.CourseTitle, session.ClassSessionWeek),
			Link:    &link,
		}

		var batch []courseModel.EnrollmentModel
		return tx.
			Where("enrollment_course_id = ? AND enrollment_role = ?", course.CourseID, constants.RoleStudent).
			FindInBatches(&batch, seedBatchSize, func(_ *gorm.DB, _ int) error {
				rows := make([]attendanceModel.AttendanceModel, 0, len(batch))
				for _, e := range batch {
					rows = append(rows, attendanceModel.AttendanceModel{
						AttendanceSessionID: session.ClassSessionID,
						AttendanceStudentID: e.EnrollmentUserID,
						AttendanceStatus:    attendanceModel.AttendanceStatusAbsent,
					})
				}
				if len(rows) == 0 {
					return nil
				}
				// buka ulang: baris presensi yang sudah ada tidak disentuh
				if err := tx.Clauses(clause.OnConflict{
					Columns: []clause.Column{
						{Name: "attendance_session_id"},
						{Name: "attendance_student_id"},
					},
					DoNothing: true,
				}).Create(&rows).Error; err != nil {
					return err
				}

				// push hanya untuk notifikasi yang benar-benar tercipta:
				// buka ulang tidak mengirim apa pun, dan roster penuh tidak
				// pernah ditahan di memori
				for _, e := range batch {
					dedup := fmt.Sprintf("attendance_open:%s:%s", session.ClassSessionID, e.EnrollmentUserID)
					created, err := notifService.CreateDedupInTx(tx, &notifModel.NotificationModel{
						NotificationUserID:   e.EnrollmentUserID,
						NotificationType:     payload.Type,
						NotificationMessage:  payload.Message,
						NotificationLink:     payload.Link,
						NotificationDedupKey: &dedup,
					})
					if err != nil {
						return err
					}
					if created {
						notify = append(notify, e.EnrollmentUserID)
					}
				}
				return nil
			}).Error
	})
	if err != nil {
		return nil, err
	}

	for _, userID := range notify {
		notifService.Push(sink, userID, payload)
	}
	return session, nil
}

// CloseCheckIn menutup presensi. Hanya sesi OPEN yang bisa ditutup; PIN
// dihapus sehingga tidak ada jalur check-in yang tersisa.
func CloseCheckIn(db *gorm.DB, sessionID, actorID uuid.UUID, role string) (*sessionModel.ClassSessionModel, error) {
	var session *sessionModel.ClassSessionModel

	err := db.Transaction(func(tx *gorm.DB) error {
		var (
			course *courseModel.CourseModel
			err    error
		)
		session, course, err = findSessionWithCourse(tx, sessionID)
		if err != nil {
			return err
		}
		if !helper.CanModerateCourse(role, actorID, course.CourseInstructorID) {
			return ErrForbidden
		}
		if session.ClassSessionStatus != sessionModel.SessionStatusOpen {
			return ErrInvalidState
		}

		session.ClassSessionStatus = sessionModel.SessionStatusClosed
		session.ClassSessionPinCode = nil
		return tx.Model(session).Updates(map[string]any{
			"class_session_status":   sessionModel.SessionStatusClosed,
			"class_session_pin_code": nil,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// SessionPatch: field opsional untuk edit sesi (pointer = tidak diubah).
type SessionPatch struct {
	Date     *time.Time
	StartAt  *string
	EndAt    *string
	Room     *string
	IsMakeup *bool
	Method   *string
}

// EditSession memperbarui metadata satu sesi (reschedule, ganti ruangan,
// tandai makeup). Status lifecycle tidak disentuh di sini.
func EditSession(db *gorm.DB, sessionID, actorID uuid.UUID, role string, patch SessionPatch) (*sessionModel.ClassSessionModel, error) {
	updates := map[string]any{}
	if patch.Date != nil {
		d := *patch.Date
		updates["class_session_date"] = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	if patch.StartAt != nil {
		if _, err := time.Parse("15:04", *patch.StartAt); err != nil {
			return nil, ErrInvalidTimeFormat
		}
		updates["class_session_start_at"] = *patch.StartAt
	}
	if patch.EndAt != nil {
		if _, err := time.Parse("15:04", *patch.EndAt); err != nil {
			return nil, ErrInvalidTimeFormat
		}
		updates["class_session_end_at"] = *patch.EndAt
	}
	if patch.Room != nil {
		updates["class_session_room"] = *patch.Room
	}
	if patch.IsMakeup != nil {
		updates["class_session_is_makeup"] = *patch.IsMakeup
	}
	if patch.Method != nil {
		updates["class_session_attendance_method"] = *patch.Method
	}

	var session *sessionModel.ClassSessionModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var (
			course *courseModel.CourseModel
			err    error
		)
		session, course, err = findSessionWithCourse(tx, sessionID)
		if err != nil {
			return err
		}
		if !helper.CanModerateCourse(role, actorID, course.CourseInstructorID) {
			return ErrForbidden
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(session).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(session, "class_session_id = ?", sessionID).Error
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// SessionSummary: rekap satu sesi untuk dosen.
type SessionSummary struct {
	Session *sessionModel.ClassSessionModel   `json:"session"`
	Counts  map[string]int64                  `json:"counts"`
	Rows    []attendanceModel.AttendanceModel `json:"rows"`
}

var statusLabels = map[int]string{
	attendanceModel.AttendanceStatusUnset:   "UNSET",
	attendanceModel.AttendanceStatusPresent: "PRESENT",
	attendanceModel.AttendanceStatusLate:    "LATE",
	attendanceModel.AttendanceStatusAbsent:  "ABSENT",
	attendanceModel.AttendanceStatusExcused: "EXCUSED",
}

// GetSessionSummary memuat seluruh baris presensi satu sesi beserta agregat
// per status.
func GetSessionSummary(db *gorm.DB, sessionID, actorID uuid.UUID, role string) (*SessionSummary, error) {
	session, course, err := findSessionWithCourse(db, sessionID)
	if err != nil {
		return nil, err
	}
	if !helper.CanModerateCourse(role, actorID, course.CourseInstructorID) {
		return nil, ErrForbidden
	}

	var rows []attendanceModel.AttendanceModel
	if err := db.
		Where("attendance_session_id = ?", sessionID).
		Order("attendance_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(statusLabels))
	for _, label := range statusLabels {
		counts[label] = 0
	}
	for _, r := range rows {
		counts[statusLabels[r.AttendanceStatus]]++
	}

	return &SessionSummary{Session: session, Counts: counts, Rows: rows}, nil
}

// ListCourseSessions mengembalikan seluruh sesi satu mata kuliah berurut pekan.
func ListCourseSessions(db *gorm.DB, courseID uuid.UUID) ([]sessionModel.ClassSessionModel, error) {
	var rows []sessionModel.ClassSessionModel
	if err := db.
		Where("class_session_course_id = ?", courseID).
		Order("class_session_week ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
