package memory

import (
	"context"
	"sync"

	"github.com/hilthontt/roomly/internal/domain"
)

// roomRepository keeps rooms in insertion order so List matches what a
// collection scan returns.
type roomRepository struct {
	rooms map[string]*domain.Room // ID -> Room
	order []string
	mu    *sync.RWMutex
}

func NewRoomRepository() domain.RoomRepository {
	return &roomRepository{
		rooms: make(map[string]*domain.Room),
		order: make([]string, 0),
		mu:    &sync.RWMutex{},
	}
}

func (r *roomRepository) List(ctx context.Context) ([]domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]domain.Room, 0, len(r.order))
	for _, id := range r.order {
		rooms = append(rooms, cloneRoom(r.rooms[id]))
	}

	return rooms, nil
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	if id == "" {
		return nil, domain.ErrRoomNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, exists := r.rooms[id]
	if !exists {
		return nil, domain.ErrRoomNotFound
	}

	cpy := cloneRoom(room)
	return &cpy, nil
}

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	if room == nil || room.ID == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[room.ID]; exists {
		return domain.ErrRoomAlreadyExists
	}

	cpy := cloneRoom(room)
	r.rooms[room.ID] = &cpy
	r.order = append(r.order, room.ID)

	return nil
}

// DeleteMatching removes at most one room. Zero matches is not an error.
func (r *roomRepository) DeleteMatching(ctx context.Context, filter domain.RoomFilter) (int64, error) {
	if filter.ID == "" {
		return 0, domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, exists := r.rooms[filter.ID]
	if !exists {
		return 0, nil
	}
	if filter.OwnerID != "" && room.OwnerID != filter.OwnerID {
		return 0, nil
	}

	delete(r.rooms, filter.ID)
	for i, id := range r.order {
		if id == filter.ID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return 1, nil
}

func (r *roomRepository) AppendComment(ctx context.Context, roomID string, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, exists := r.rooms[roomID]
	if !exists {
		return domain.ErrRoomNotFound
	}

	room.CommentIDs = append(room.CommentIDs, commentID)
	return nil
}

func cloneRoom(room *domain.Room) domain.Room {
	cpy := *room
	cpy.CommentIDs = make([]string, len(room.CommentIDs))
	copy(cpy.CommentIDs, room.CommentIDs)
	return cpy
}
