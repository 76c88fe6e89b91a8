package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hilthontt/roomly/internal/infrastructure/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	clientBuffer   = 64
)

type Client struct {
	conn    *safeConn
	Message chan *WSMessage
	ID      string `json:"id"`
	RoomID  string `json:"roomId"`

	mu      sync.Mutex
	primed  bool
	backlog []*WSMessage
}

func NewClient(conn *websocket.Conn, roomID string) *Client {
	return &Client{
		conn:    newSafeConn(conn),
		Message: make(chan *WSMessage, clientBuffer), // buffered to avoid dead-locks on slow clients
		ID:      uuid.NewString(),
		RoomID:  roomID,
	}
}

// Close tells the peer the feed is going away and drops the connection. Used
// when the client never made it into the hub.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.closeWith(websocket.CloseGoingAway, "feed unavailable")
}

// ReadMessage drains the connection until it closes. The feed is read-only;
// inbound frames only keep the connection alive.
func (c *Client) ReadMessage(core *Core, logger logging.Logger) {
	defer func() {
		core.Leave(c)
		_ = c.conn.close()
	}()

	c.conn.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.conn.SetPongHandler(func(string) error {
		return c.conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn(logging.WebSocket, logging.Consume, "ws read error", map[logging.ExtraKey]any{
					logging.RoomID:       c.RoomID,
					logging.ErrorMessage: err.Error(),
				})
			}
			return
		}
	}
}

func (c *Client) WriteMessage(logger logging.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.close()
	}()

	for {
		select {
		case msg, ok := <-c.Message:
			if !ok {
				_ = c.conn.closeWith(websocket.CloseNormalClosure, "")
				return
			}
			if err := c.conn.writeJSON(msg); err != nil {
				logger.Warn(logging.WebSocket, logging.Publish, "ws write error", map[logging.ExtraKey]any{
					logging.RoomID:       c.RoomID,
					logging.ErrorMessage: err.Error(),
				})
				return
			}
		case <-ticker.C:
			if err := c.conn.ping(); err != nil {
				return
			}
		}
	}
}
