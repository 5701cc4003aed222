package service

import (
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/han020423/Attendance-management/internals/constants"
	attendanceModel "github.com/han020423/Attendance-management/internals/features/attendance/attendance/model"
	sessionModel "github.com/han020423/Attendance-management/internals/features/attendance/sessions/model"
	notifModel "github.com/han020423/Attendance-management/internals/features/notifications/model"
	"github.com/han020423/Attendance-management/internals/testutil"
)

func TestGeneratePIN(t *testing.T) {
	format := regexp.MustCompile(`^[0-9]{6}$`)
	for i := 0; i < 100; i++ {
		pin := GeneratePIN()
		if !format.MatchString(pin) {
			t.Fatalf("PIN %q bukan 6 digit", pin)
		}
	}
}

// captureSink mencatat jumlah push per user.
type captureSink struct {
	got map[uuid.UUID]int
}

func newCaptureSink() *captureSink {
	return &captureSink{got: make(map[uuid.UUID]int)}
}

func (s *captureSink) Publish(userID uuid.UUID, _ any) {
	s.got[userID]++
}

func (s *captureSink) total() int {
	n := 0
	for _, c := range s.got {
		n += c
	}
	return n
}

func countRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func TestOpenCheckInSeedsRosterAndNotifies(t *testing.T) {
	db := testutil.OpenDB(t)
	instructorID := uuid.New()
	course := testutil.SeedCourse(t, db, instructorID)
	students := testutil.SeedStudents(t, db, course.CourseID, 5)
	session := testutil.SeedSession(t, db, course.CourseID, 1, sessionModel.SessionStatusScheduled)

	opened, err := OpenCheckIn(db, nil, session.ClassSessionID, instructorID, constants.RoleInstructor, sessionModel.AttendanceMethodPIN)
	if err != nil {
		t.Fatalf("OpenCheckIn: %v", err)
	}
	if opened.ClassSessionStatus != sessionModel.SessionStatusOpen {
		t.Errorf("status = %s, want OPEN", opened.ClassSessionStatus)
	}
	if opened.ClassSessionPinCode == nil || len(*opened.ClassSessionPinCode) != 6 {
		t.Error("sesi OPEN harus punya PIN 6 digit")
	}

	if got := countRows(t, db, &attendanceModel.AttendanceModel{},
		"attendance_session_id = ?", session.ClassSessionID); got != int64(len(students)) {
		t.Errorf("baris presensi = %d, want %d", got, len(students))
	}
	if got := countRows(t, db, &attendanceModel.AttendanceModel{},
		"attendance_session_id = ? AND attendance_status = ?",
		session.ClassSessionID, attendanceModel.AttendanceStatusAbsent); got != int64(len(students)) {
		t.Errorf("semua baris seed harus ABSENT, dapat %d", got)
	}
	if got := countRows(t, db, &notifModel.NotificationModel{},
		"notification_type = ?", constants.NotifAttendanceOpen); got != int64(len(students)) {
		t.Errorf("notifikasi = %d, want %d", got, len(students))
	}
}

func TestOpenCheckInReopenIsIdempotent(t *testing.T) {
	db := testutil.OpenDB(t)
	instructorID := uuid.New()
	course := testutil.SeedCourse(t, db, instructorID)
	testutil.SeedStudents(t, db, course.CourseID, 3)
	session := testutil.SeedSession(t, db, course.CourseID, 1, sessionModel.SessionStatusScheduled)

	first, err := OpenCheckIn(db, nil, session.ClassSessionID, instructorID, constants.RoleInstructor, sessionModel.AttendanceMethodPIN)
	if err != nil {
		t.Fatalf("open pertama: %v", err)
	}

	// tandai satu mahasiswa hadir lalu buka ulang
	var row attendanceModel.AttendanceModel
	if err := db.First(&row, "attendance_session_id = ?", session.ClassSessionID).Error; err != nil {
		t.Fatalf("ambil baris: %v", err)
	}
	if err := db.Model(&row).
		Update("attendance_status", attendanceModel.AttendanceStatusPresent).Error; err != nil {
		t.Fatalf("update: %v", err)
	}

	second, err := OpenCheckIn(db, nil, session.ClassSessionID, instructorID, constants.RoleInstructor, sessionModel.AttendanceMethodPIN)
	if err != nil {
		t.Fatalf("open kedua: %v", err)
	}
	if second.ClassSessionPinCode == nil || first.ClassSessionPinCode == nil {
		t.Fatal("kedua open harus menghasilkan PIN")
	}

	if got := countRows(t, db, &attendanceModel.AttendanceModel{},
		"attendance_session_id = ?", session.ClassSessionID); got != 3 {
		t.Errorf("baris presensi = %d, want 3 (tidak boleh duplikat)", got)
	}
	if got := countRows(t, db, &attendanceModel.AttendanceModel{},
		"attendance_session_id = ? AND attendance_status = ?",
		session.ClassSessionID, attendanceModel.AttendanceStatusPresent); got != 1 {
		t.Errorf("baris yang sudah hadir tidak boleh ditimpa, dapat %d", got)
	}
	if got := countRows(t, db, &notifModel.NotificationModel{},
		"notification_type = ?", constants.NotifAttendanceOpen); got != 3 {
		t.Errorf("notifikasi = %d, want 3 (dedup saat buka ulang)", got)
	}
}

func TestOpenCheckInElectronicAlsoIssuesPIN(t *testing.T) {
	db := testutil.OpenDB(t)
	instructorID := uuid.New()
	course := testutil.SeedCourse(t, db, instructorID)
	testutil.SeedStudents(t, db, course.CourseID, 2)
	session := testutil.SeedSession(t, db, course.CourseID, 1, sessionModel.SessionStatusScheduled)

	opened, err := OpenCheckIn(db, nil, session.ClassSessionID, instructorID, constants.RoleInstructor, sessionModel.AttendanceMethodElectronic)
	if err != nil {
		t.Fatalf("OpenCheckIn: %v", err)
	}
	// sesi OPEN selalu punya PIN, metode apa pun
	if opened.ClassSessionPinCode == nil || len(*opened.ClassSessionPinCode) != 6 {
		t.Fatalf("sesi OPEN metode ELECTRONIC harus tetap punya PIN, dapat %v", opened.ClassSessionPinCode)
	}

	var reloaded sessionModel.ClassSessionModel
	if err := db.First(&reloaded, "class_session_id = ?", session.ClassSessionID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ClassSessionStatus != sessionModel.SessionStatusOpen || reloaded.ClassSessionPinCode == nil {
		t.Errorf("invariant pin-saat-OPEN gagal: status=%s pin=%v",
			reloaded.ClassSessionStatus, reloaded.ClassSessionPinCode)
	}
}

func TestOpenCheckInPushesOnlyNewNotifications(t *testing.T) {
	db := testutil.OpenDB(t)
	instructorID := uuid.New()
	course := testutil.SeedCourse(t, db, instructorID)
	students := testutil.SeedStudents(t, db, course.CourseID, 4)
	session := testutil.SeedSession(t, db, course.CourseID, 1, sessionModel.SessionStatusScheduled)

	first := newCaptureSink()
	if _, err := OpenCheckIn(db, first, session.ClassSessionID, instructorID, constants.RoleInstructor, sessionModel.AttendanceMethodPIN); err != nil {
		t.Fatalf("open pertama: %v", err)
	}
	if first.total() != len(students) {
		t.Errorf("push pertama = %d, want %d", first.total(), len(students))
	}
	for _, id := range students {
		if first.got[id] != 1 {
			t.Errorf("mahasiswa %s menerima %d push, want 1", id, first.got[id])
		}
	}

	// buka ulang: notifikasi durable ter-dedup, push juga tidak boleh terulang
	second := newCaptureSink()
	if _, err := OpenCheckIn(db, second, session.ClassSessionID, instructorID, constants.RoleInstructor, sessionModel.AttendanceMethodPIN); err != nil {
		t.Fatalf("open kedua: %v", err)
	}
	if second.total() != 0 {
		t.Errorf("buka ulang mengirim %d push, want 0", second.total())
	}
}

func TestOpenCheckInRejectsCancelledSession(t *testing.T) {
	db := testutil.OpenDB(t)
	instructorID := uuid.New()
	course := testutil.SeedCourse(t, db, instructorID)
	session := testutil.SeedSession(t, db, course.CourseID, 1, sessionModel.SessionStatusCancelled)

	_, err := OpenCheckIn(db, nil, session.ClassSessionID, instructorID, constants.RoleInstructor, sessionModel.AttendanceMethodPIN)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}

func TestOpenCheckInForbiddenForOtherInstructor(t *testing.T) {
	db := testutil.OpenDB(t)
	course := testutil.SeedCourse(t, db, uuid.New())
	session := testutil.SeedSession(t, db, course.CourseID, 1, sessionModel.SessionStatusScheduled)

	_, err := OpenCheckIn(db, nil, session.ClassSessionID, uuid.New(), constants.RoleInstructor, sessionModel.AttendanceMethodPIN)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestPinPresentOnlyWhileOpen(t *testing.T) {
	db := testutil.OpenDB(t)
	instructorID := uuid.New()
	course := testutil.SeedCourse(t, db, instructorID)
	testutil.SeedStudents(t, db, course.CourseID, 1)
	session := testutil.SeedSession(t, db, course.CourseID, 1, sessionModel.SessionStatusScheduled)

	opened, err := OpenCheckIn(db, nil, session.ClassSessionID, instructorID, constants.RoleInstructor, sessionModel.AttendanceMethodPIN)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if opened.ClassSessionPinCode == nil {
		t.Fatal("PIN harus terisi selama OPEN")
	}

	closed, err := CloseCheckIn(db, session.ClassSessionID, instructorID, constants.RoleInstructor)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.ClassSessionStatus != sessionModel.SessionStatusClosed {
		t.Errorf("status = %s, want CLOSED", closed.ClassSessionStatus)
	}

	var reloaded sessionModel.ClassSessionModel
	if err := db.First(&reloaded, "class_session_id = ?", session.ClassSessionID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ClassSessionPinCode != nil {
		t.Error("PIN harus kosong setelah CLOSED")
	}

	// tutup dua kali
	if _, err := CloseCheckIn(db, session.ClassSessionID, instructorID, constants.RoleInstructor); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("close kedua: err = %v, want ErrInvalidState", err)
	}
}

func TestCloseCheckInRequiresOpen(t *testing.T) {
	db := testutil.OpenDB(t)
	instructorID := uuid.New()
	course := testutil.SeedCourse(t, db, instructorID)
	session := testutil.SeedSession(t, db, course.CourseID, 1, sessionModel.SessionStatusScheduled)

	if _, err := CloseCheckIn(db, session.ClassSessionID, instructorID, constants.RoleInstructor); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}
