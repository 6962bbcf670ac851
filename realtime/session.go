package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Session wraps one websocket connection. Writes are serialized with a mutex
// because broadcasts and the read loop's close path run on different
// goroutines.
type Session struct {
	userID string
	conn   *websocket.Conn

	mu sync.Mutex
}

// NewSession creates a session for an upgraded connection
func NewSession(userID string, conn *websocket.Conn) *Session {
	return &Session{
		userID: userID,
		conn:   conn,
	}
}

// UserID returns the user this session belongs to
func (s *Session) UserID() string {
	return s.userID
}

func (s *Session) writeJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

// Close closes the underlying connection
func (s *Session) Close() error {
	return s.conn.Close()
}
