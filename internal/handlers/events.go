package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/gig-marketplace-api/internal/errors"
	"github.com/yukikurage/gig-marketplace-api/internal/middleware"
	"github.com/yukikurage/gig-marketplace-api/internal/notify"
)

const defaultHeartbeatInterval = 15 * time.Second

// EventHandler streams live notifications to the signed-in user
type EventHandler struct {
	registry  *notify.Registry
	heartbeat time.Duration
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(registry *notify.Registry) *EventHandler {
	return &EventHandler{
		registry:  registry,
		heartbeat: defaultHeartbeatInterval,
	}
}

// Stream joins the caller's room and writes events as Server-Sent Events
// until the client disconnects.
func (h *EventHandler) Stream(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	writer := c.Writer
	flusher, ok := writer.(http.Flusher)
	if !ok {
		apierrors.InternalError(c, "Streaming unsupported")
		return
	}

	subscription := h.registry.Join(userID)
	defer subscription.Close()

	headers := writer.Header()
	headers.Set("Content-Type", "text/event-stream")
	headers.Set("Cache-Control", "no-cache")
	headers.Set("Connection", "keep-alive")
	headers.Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	if _, err := io.WriteString(writer, "retry: 2000\n\n"); err != nil {
		return
	}
	flusher.Flush()

	ctx := c.Request.Context()
	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-subscription.Events():
			if err := writeEvent(writer, event); err != nil {
				return
			}
			flusher.Flush()
		case <-heartbeat.C:
			if _, err := io.WriteString(writer, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w io.Writer, event notify.Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
	return err
}
