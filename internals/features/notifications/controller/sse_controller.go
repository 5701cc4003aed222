package controller

import (
	"bufio"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/han020423/Attendance-management/internals/features/notifications/sse"
	helper "github.com/han020423/Attendance-management/internals/helpers"
)

const keepAliveInterval = 20 * time.Second

type SSEController struct {
	Hub *sse.Hub
}

func NewSSEController(hub *sse.Hub) *SSEController {
	return &SSEController{Hub: hub}
}

// GET /api/u/notifications/stream
// Satu stream SSE per user; koneksi baru menggantikan yang lama.
func (ctrl *SSEController) Stream(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	ch, cancel := ctrl.Hub.Subscribe(userID)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				fmt.Fprintf(w, "data: %s\n\n", msg)
				if err := w.Flush(); err != nil {
					return
				}
			case <-ticker.C:
				fmt.Fprint(w, ": keep-alive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}
