package ws

import (
	"errors"
	"sync"

	"github.com/hilthontt/roomly/internal/infrastructure/logging"
)

var ErrRoomNotFound = errors.New("no feed clients for room")

type feedRoom struct {
	ID      string
	Clients map[string]*Client
}

type RoomManager struct {
	rooms  map[string]*feedRoom // roomID → feedRoom
	logger logging.Logger
	mu     sync.RWMutex
}

func NewRoomManager(logger logging.Logger) *RoomManager {
	return &RoomManager{
		rooms:  make(map[string]*feedRoom),
		logger: logger,
	}
}

// AddClient registers cl and delivers broadcasts to it right away.
func (rm *RoomManager) AddClient(cl *Client) {
	cl.mu.Lock()
	cl.primed = true
	cl.mu.Unlock()

	rm.add(cl)
}

// addHeldClient registers cl but queues its broadcasts until Prime runs, so
// the replayed history is always the first thing the client sees.
func (rm *RoomManager) addHeldClient(cl *Client) {
	rm.add(cl)
}

func (rm *RoomManager) add(cl *Client) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	room, ok := rm.rooms[cl.RoomID]
	if !ok {
		room = &feedRoom{
			ID:      cl.RoomID,
			Clients: make(map[string]*Client),
		}
		rm.rooms[cl.RoomID] = room
	}

	if _, exists := room.Clients[cl.ID]; !exists {
		room.Clients[cl.ID] = cl
	}
}

// Prime sends first, then the broadcasts queued while cl was held, minus
// those skip rejects. Later broadcasts go straight to the client.
func (rm *RoomManager) Prime(cl *Client, first *WSMessage, skip func(*WSMessage) bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	if !rm.registered(cl) {
		return
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if first != nil {
		rm.push(cl, first)
	}
	for _, msg := range cl.backlog {
		if skip != nil && skip(msg) {
			continue
		}
		rm.push(cl, msg)
	}
	cl.backlog = nil
	cl.primed = true
}

// RemoveClient closes the client's outbound channel. It reports whether the
// client was registered.
func (rm *RoomManager) RemoveClient(cl *Client) bool {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	room, ok := rm.rooms[cl.RoomID]
	if !ok {
		return false
	}
	if _, ok := room.Clients[cl.ID]; !ok {
		return false
	}

	delete(room.Clients, cl.ID)
	close(cl.Message)

	if len(room.Clients) == 0 {
		delete(rm.rooms, cl.RoomID)
	}

	return true
}

func (rm *RoomManager) ClientCount(roomID string) int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	if room, ok := rm.rooms[roomID]; ok {
		return len(room.Clients)
	}
	return 0
}

func (rm *RoomManager) BroadcastToRoom(msg *WSMessage) error {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	room, ok := rm.rooms[msg.RoomID]
	if !ok {
		return ErrRoomNotFound
	}

	for _, cl := range room.Clients {
		rm.trySend(cl, msg)
	}
	return nil
}

// SendTo delivers msg to one client if it is still registered.
func (rm *RoomManager) SendTo(cl *Client, msg *WSMessage) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	if !rm.registered(cl) {
		return
	}

	rm.trySend(cl, msg)
}

// registered must be called with rm.mu held.
func (rm *RoomManager) registered(cl *Client) bool {
	room, ok := rm.rooms[cl.RoomID]
	if !ok {
		return false
	}
	_, ok = room.Clients[cl.ID]
	return ok
}

// trySend never blocks; the caller holds rm.mu.
func (rm *RoomManager) trySend(cl *Client, msg *WSMessage) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if !cl.primed {
		if len(cl.backlog) < cap(cl.Message) {
			cl.backlog = append(cl.backlog, msg)
			return
		}
		rm.dropped(cl, msg)
		return
	}

	rm.push(cl, msg)
}

// push needs rm.mu and cl.mu held.
func (rm *RoomManager) push(cl *Client, msg *WSMessage) {
	select {
	case cl.Message <- msg:
	default:
		rm.dropped(cl, msg)
	}
}

func (rm *RoomManager) dropped(cl *Client, msg *WSMessage) {
	rm.logger.Warn(logging.WebSocket, logging.Publish, "client buffer full, dropping message", map[logging.ExtraKey]any{
		logging.RoomID: cl.RoomID,
		"client":       cl.ID,
		"type":         msg.Type,
	})
}
