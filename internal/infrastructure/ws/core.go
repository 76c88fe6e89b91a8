package ws

import (
	"context"
	"errors"
	"time"

	"github.com/hilthontt/roomly/internal/infrastructure/logging"
	"github.com/hilthontt/roomly/internal/service/rooms"
)

const historyTimeout = 5 * time.Second

type CommentLister interface {
	ListComments(ctx context.Context, roomID string) ([]rooms.CommentView, error)
}

// CommentListerFunc adapts a function to CommentLister.
type CommentListerFunc func(ctx context.Context, roomID string) ([]rooms.CommentView, error)

func (f CommentListerFunc) ListComments(ctx context.Context, roomID string) ([]rooms.CommentView, error) {
	return f(ctx, roomID)
}

type ClientGauge interface {
	FeedClientConnected()
	FeedClientDisconnected()
}

// Core owns the feed's client registry. All registry changes go through Run.
type Core struct {
	roomMgr    *RoomManager
	register   chan *Client
	unregister chan *Client
	broadcast  chan *WSMessage
	history    CommentLister
	gauge      ClientGauge
	logger     logging.Logger
	done       chan struct{}
}

func NewCore(history CommentLister, gauge ClientGauge, logger logging.Logger) *Core {
	return &Core{
		roomMgr:    NewRoomManager(logger),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *WSMessage, 256),
		history:    history,
		gauge:      gauge,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

func (c *Core) Run(ctx context.Context) {
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			return

		case cl := <-c.register:
			c.roomMgr.addHeldClient(cl)
			if c.gauge != nil {
				c.gauge.FeedClientConnected()
			}
			go c.replay(ctx, cl)

		case cl := <-c.unregister:
			if c.roomMgr.RemoveClient(cl) && c.gauge != nil {
				c.gauge.FeedClientDisconnected()
			}

		case msg := <-c.broadcast:
			if err := c.roomMgr.BroadcastToRoom(msg); err != nil && !errors.Is(err, ErrRoomNotFound) {
				c.logger.Error(logging.WebSocket, logging.Publish, "broadcast error", map[logging.ExtraKey]any{
					logging.RoomID:       msg.RoomID,
					logging.ErrorMessage: err.Error(),
				})
			}
		}
	}
}

// Done is closed once Run has returned.
func (c *Core) Done() <-chan struct{} {
	return c.done
}

// Join hands cl to the hub. It reports false once Run has returned; the
// client is then not registered and the caller owns its connection.
func (c *Core) Join(cl *Client) bool {
	select {
	case c.register <- cl:
		return true
	case <-c.done:
		return false
	}
}

func (c *Core) Leave(cl *Client) {
	select {
	case c.unregister <- cl:
	case <-c.done:
	}
}

func (c *Core) NotifyCommentAdded(roomID string, comment rooms.CommentView) {
	c.publish(NewCommentAdded(roomID, toPayload(comment)))
}

func (c *Core) NotifyRoomDeleted(roomID string) {
	c.publish(NewRoomDeleted(roomID))
}

func (c *Core) ClientCount(roomID string) int {
	return c.roomMgr.ClientCount(roomID)
}

// publish drops the message when the broadcast queue is full rather than
// stalling the request that triggered it.
func (c *Core) publish(msg *WSMessage) {
	select {
	case c.broadcast <- msg:
	default:
		c.logger.Warn(logging.WebSocket, logging.Publish, "broadcast queue full, dropping message", map[logging.ExtraKey]any{
			logging.RoomID: msg.RoomID,
			"type":         msg.Type,
		})
	}
}

// replay sends the room's comments as one comment.history message, then
// releases whatever was broadcast while they were loading. Comments already in
// the history are not sent twice.
func (c *Core) replay(ctx context.Context, cl *Client) {
	ctx, cancel := context.WithTimeout(ctx, historyTimeout)
	defer cancel()

	views, err := c.history.ListComments(ctx, cl.RoomID)
	if err != nil {
		c.logger.Warn(logging.WebSocket, logging.Select, "failed to load comment history", map[logging.ExtraKey]any{
			logging.RoomID:       cl.RoomID,
			logging.ErrorMessage: err.Error(),
		})
		if errors.Is(err, rooms.ErrNotFound) {
			c.roomMgr.Prime(cl, NewRoomDeleted(cl.RoomID), isType(RoomDeleted))
			return
		}
		c.roomMgr.Prime(cl, nil, nil)
		return
	}

	seen := make(map[string]struct{}, len(views))
	payload := make([]CommentPayload, 0, len(views))
	for _, v := range views {
		seen[v.ID] = struct{}{}
		payload = append(payload, toPayload(v))
	}

	c.roomMgr.Prime(cl, NewCommentHistory(cl.RoomID, payload), func(msg *WSMessage) bool {
		if msg.Type != CommentAdded {
			return false
		}
		comment, ok := msg.Data.(CommentPayload)
		if !ok {
			return false
		}
		_, dup := seen[comment.ID]
		return dup
	})
}

func isType(typ string) func(*WSMessage) bool {
	return func(msg *WSMessage) bool { return msg.Type == typ }
}

func toPayload(v rooms.CommentView) CommentPayload {
	return CommentPayload{
		ID:                v.ID,
		Content:           v.Content,
		AuthorDisplayName: v.AuthorDisplayName,
	}
}
