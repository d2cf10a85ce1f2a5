package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"video-distributor/domain/dto"
	"video-distributor/domain/model"
	"video-distributor/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

const EventSessionStatus = "session_status"

// SessionEvent is the SSE payload pushed on every session replacement.
type SessionEvent struct {
	Type    string              `json:"type"`
	Session dto.SessionResponse `json:"session"`
}

// Hub maintains per-session subscribers listening for session snapshots.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[chan SessionEvent]struct{}
}

func NewSessionHub() *Hub {
	return &Hub{sessions: make(map[string]map[chan SessionEvent]struct{})}
}

// Serve streams events for one session until the client goes away. The
// subscriber is registered before snapshot is read, so a change committed in
// between arrives as an event instead of being lost. A snapshot error is
// returned before anything is written.
func (h *Hub) Serve(c *gin.Context, sessionID string, snapshot func() (*model.Session, error)) error {
	ch := make(chan SessionEvent, 16)
	h.addSubscriber(sessionID, ch)
	defer h.removeSubscriber(sessionID, ch)

	initial, err := snapshot()
	if err != nil {
		return err
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // disable nginx buffering
	c.Status(http.StatusOK)

	_, _ = c.Writer.Write([]byte(":ok\n\n"))
	writeEvent(c, newEvent(initial))

	for {
		select {
		case <-c.Request.Context().Done():
			return nil
		case evt := <-ch:
			writeEvent(c, evt)
		}
	}
}

func writeEvent(c *gin.Context, evt SessionEvent) {
	data, err := json.Marshal(evt)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to encode session event")
		return
	}
	_, _ = c.Writer.Write([]byte("event: " + evt.Type + "\n"))
	_, _ = c.Writer.Write([]byte("data: "))
	_, _ = c.Writer.Write(data)
	_, _ = c.Writer.Write([]byte("\n\n"))
	c.Writer.Flush()
}

func newEvent(s *model.Session) SessionEvent {
	return SessionEvent{Type: EventSessionStatus, Session: dto.NewSessionResponse(s)}
}

func (h *Hub) addSubscriber(sessionID string, ch chan SessionEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[chan SessionEvent]struct{})
	}
	h.sessions[sessionID][ch] = struct{}{}
}

func (h *Hub) removeSubscriber(sessionID string, ch chan SessionEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs := h.sessions[sessionID]; subs != nil {
		delete(subs, ch)
		if len(subs) == 0 {
			delete(h.sessions, sessionID)
		}
	}
}

func (h *Hub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

// Broadcast fans a snapshot out to every subscriber of its session. Sends
// never block, so it is safe to call while the session store is locked.
// Every event is a full snapshot: when a subscriber's buffer is full the
// oldest queued event is dropped so the latest one still gets through.
func (h *Hub) Broadcast(s *model.Session) {
	if s == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	subs := h.sessions[s.ID]
	if len(subs) == 0 {
		return
	}
	evt := newEvent(s)
	for ch := range subs {
		offer(ch, evt)
	}
}

func offer(ch chan SessionEvent, evt SessionEvent) {
	select {
	case ch <- evt:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- evt:
	default:
	}
}
