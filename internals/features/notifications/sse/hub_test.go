package sse

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func recv(t *testing.T, ch <-chan []byte) string {
	t.Helper()
	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatal("channel sudah ditutup")
		}
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("tidak ada pesan masuk")
		return ""
	}
}

func TestPublishReachesSubscriber(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, cancel := hub.Subscribe(userID)
	defer cancel()

	hub.Publish(userID, map[string]string{"type": "ATTENDANCE_OPEN"})

	if msg := recv(t, ch); !strings.Contains(msg, "ATTENDANCE_OPEN") {
		t.Errorf("pesan = %q", msg)
	}
}

func TestPublishToOfflineUserIsNoop(t *testing.T) {
	hub := NewHub()
	// tidak boleh panic atau blocking
	hub.Publish(uuid.New(), map[string]string{"type": "EXCUSE_RESULT"})
}

func TestSecondSubscribeReplacesFirst(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	first, _ := hub.Subscribe(userID)
	second, cancel := hub.Subscribe(userID)
	defer cancel()

	if _, ok := <-first; ok {
		t.Error("koneksi pertama harus ditutup saat digantikan")
	}

	hub.Publish(userID, map[string]string{"type": "APPEAL_RESULT"})
	if msg := recv(t, second); !strings.Contains(msg, "APPEAL_RESULT") {
		t.Errorf("pesan = %q", msg)
	}
}

func TestPublishSafeDuringResubscribeChurn(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	// publish terus-menerus selagi langganan user yang sama silih
	// berganti dibuat dan dibatalkan; tidak boleh panic karena send
	// ke channel yang sudah ditutup
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				hub.Publish(userID, map[string]string{"type": "ATTENDANCE_OPEN"})
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			ch, cancel := hub.Subscribe(userID)
			go func() {
				for range ch {
				}
			}()
			cancel()
		}
		close(done)
	}()

	wg.Wait()
}

func TestCancelRemovesClient(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, cancel := hub.Subscribe(userID)
	cancel()

	if _, ok := <-ch; ok {
		t.Error("channel harus ditutup setelah cancel")
	}
	// publish setelah cancel tidak boleh panic
	hub.Publish(userID, map[string]string{"type": "ABSENCE_WARNING"})
}
