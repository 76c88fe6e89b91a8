package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hilthontt/roomly/internal/domain"
)

// Oldest entries are evicted per room when capacity is exceeded.
type roomAuditRepository struct {
	logs     map[string][]domain.RoomAuditLog // roomID -> logs
	capacity uint
	mu       *sync.RWMutex
}

func NewRoomAuditRepository(capacity uint) domain.RoomAuditRepository {
	if capacity == 0 {
		capacity = 500
	}

	return &roomAuditRepository{
		logs:     make(map[string][]domain.RoomAuditLog),
		capacity: capacity,
		mu:       &sync.RWMutex{},
	}
}

func (r *roomAuditRepository) Log(ctx context.Context, log *domain.RoomAuditLog) error {
	if log == nil || log.RoomID == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	roomLogs := append(r.logs[log.RoomID], *log)
	if len(roomLogs) > int(r.capacity) {
		roomLogs = roomLogs[len(roomLogs)-int(r.capacity):]
	}
	r.logs[log.RoomID] = roomLogs

	return nil
}

// GetByRoomID returns the newest entries first.
func (r *roomAuditRepository) GetByRoomID(ctx context.Context, roomID string, limit int) ([]domain.RoomAuditLog, error) {
	r.mu.RLock()
	cpy := make([]domain.RoomAuditLog, len(r.logs[roomID]))
	copy(cpy, r.logs[roomID])
	r.mu.RUnlock()

	sort.SliceStable(cpy, func(i, j int) bool {
		return cpy[i].Timestamp.After(cpy[j].Timestamp)
	})

	if limit > 0 && len(cpy) > limit {
		cpy = cpy[:limit]
	}

	return cpy, nil
}

func (r *roomAuditRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}
