package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// safeConn serializes writes; gorilla allows one concurrent writer per
// connection. Reads stay with the client's read loop.
type safeConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newSafeConn(c *websocket.Conn) *safeConn {
	return &safeConn{conn: c}
}

func (s *safeConn) writeJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteJSON(v)
}

func (s *safeConn) ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// closeWith sends a close frame, best effort, then drops the connection.
func (s *safeConn) closeWith(code int, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeWait))
	return s.conn.Close()
}

func (s *safeConn) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn.Close()
}
