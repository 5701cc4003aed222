package sse

import (
	"sync"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// Hub memegang koneksi SSE per user untuk satu proses. Implementasi
// service.Sink; deployment multi-proses tinggal mengganti sink dengan
// message bus tanpa menyentuh engine.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]chan []byte
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uuid.UUID]chan []byte)}
}

// Subscribe mendaftarkan satu koneksi untuk user. Koneksi lama user yang
// sama diganti (satu stream per user, mengikuti registry aslinya).
func (h *Hub) Subscribe(userID uuid.UUID) (<-chan []byte, func()) {
	ch := make(chan []byte, 16)

	h.mu.Lock()
	if old, ok := h.clients[userID]; ok {
		close(old)
	}
	h.clients[userID] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if cur, ok := h.clients[userID]; ok && cur == ch {
			delete(h.clients, userID)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish mengirim payload ke user kalau sedang terhubung. Best-effort:
// user offline atau buffer penuh -> payload dibuang, tidak pernah error.
// RLock ditahan sampai send selesai; close hanya terjadi di bawah write
// lock, jadi send tidak mungkin menyentuh channel yang sudah ditutup.
func (h *Hub) Publish(userID uuid.UUID, payload any) {
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	ch, ok := h.clients[userID]
	if !ok {
		return
	}

	select {
	case ch <- raw:
	default:
	}
}
