package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"streamgate/events"
	"streamgate/models"
	"streamgate/service"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Frame types exchanged with clients. Unknown inbound types are ignored.
const (
	frameTypeSendMessage = "sendMessage"
	frameTypeNewMessage  = "newMessage"
)

type inboundFrame struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	Content string `json:"content"`
}

type outboundFrame struct {
	Type    string                  `json:"type"`
	Message *models.MessageWithUser `json:"message"`
}

// Hub is the session registry: at most one live connection per user, last
// writer wins. It is owned by the server instance and passed by reference to
// everything that needs it; a multi-instance deployment would back it with a
// shared pub/sub layer instead.
type Hub struct {
	messages service.MessageService

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewHub creates a new hub
func NewHub(messages service.MessageService) *Hub {
	return &Hub{
		messages: messages,
		sessions: make(map[string]*Session),
	}
}

// Register records a session for a user. A second connection for the same
// user silently replaces the first.
func (h *Hub) Register(session *Session) {
	h.mu.Lock()
	h.sessions[session.UserID()] = session
	h.mu.Unlock()

	log.WithField("userId", session.UserID()).Debug("Realtime session registered")
}

// Unregister removes a session. It is a no-op if the user has since
// reconnected with a different session, so a stale close cannot evict a
// fresh connection.
func (h *Hub) Unregister(session *Session) {
	h.mu.Lock()
	if current, ok := h.sessions[session.UserID()]; ok && current == session {
		delete(h.sessions, session.UserID())
	}
	h.mu.Unlock()

	log.WithField("userId", session.UserID()).Debug("Realtime session unregistered")
}

// SessionCount returns the number of registered sessions
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Broadcast delivers a message to every registered session. Delivery is
// best-effort: a session whose write fails is dropped and closed, never
// queued or retried. Disconnected clients recover through the recent-messages
// reconciliation path.
func (h *Hub) Broadcast(message *models.MessageWithUser) {
	h.mu.RLock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, session := range h.sessions {
		sessions = append(sessions, session)
	}
	h.mu.RUnlock()

	frame := outboundFrame{
		Type:    frameTypeNewMessage,
		Message: message,
	}

	for _, session := range sessions {
		if err := session.writeJSON(frame); err != nil {
			log.WithFields(log.Fields{
				"userId": session.UserID(),
				"error":  err,
			}).Debug("Dropping unwritable realtime session")
			h.Unregister(session)
			session.Close()
		}
	}
}

// HandleMessageCreated is an events.Handler that fans persisted messages out
// to all connected sessions.
func (h *Hub) HandleMessageCreated(ctx context.Context, event events.Event) {
	created, ok := event.(events.MessageCreatedEvent)
	if !ok {
		return
	}
	h.Broadcast(created.Message)
}

// ServeSession registers the session and runs its read loop until the
// connection drops. Malformed frames are logged and swallowed; the connection
// stays open and no error frame is sent back.
func (h *Hub) ServeSession(ctx context.Context, session *Session) {
	h.Register(session)
	defer func() {
		h.Unregister(session)
		session.Close()
	}()

	for {
		_, data, err := session.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithFields(log.Fields{
					"userId": session.UserID(),
					"error":  err,
				}).Debug("Realtime session closed unexpectedly")
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			log.WithField("userId", session.UserID()).Debug("Ignoring malformed realtime frame")
			continue
		}

		if frame.Type != frameTypeSendMessage {
			continue
		}

		if _, err := h.messages.PostMessage(ctx, frame.UserID, frame.Content, models.MessageTypeUser); err != nil {
			log.WithFields(log.Fields{
				"userId": frame.UserID,
				"error":  err,
			}).Warn("Failed to post realtime message")
		}
	}
}
