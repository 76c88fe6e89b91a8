package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RoomEventType string

const (
	EventRoomCreated     RoomEventType = "room_created"
	EventRoomDeleted     RoomEventType = "room_deleted"
	EventCommentAdded    RoomEventType = "comment_added"
	EventCommentOrphaned RoomEventType = "comment_orphaned"
)

type RoomAuditLog struct {
	ID        string         `bson:"_id" json:"id"`
	RoomID    string         `bson:"room_id" json:"roomId"`
	ActorID   string         `bson:"actor_id,omitempty" json:"actorId,omitempty"`
	EventType RoomEventType  `bson:"event_type" json:"eventType"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
	Metadata  map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

type RoomAuditRepository interface {
	Log(ctx context.Context, log *RoomAuditLog) error
	GetByRoomID(ctx context.Context, roomID string, limit int) ([]RoomAuditLog, error)
	EnsureIndexes(ctx context.Context) error
}

func NewRoomCreatedLog(room Room) *RoomAuditLog {
	return &RoomAuditLog{
		ID:        uuid.NewString(),
		RoomID:    room.ID,
		ActorID:   room.OwnerID,
		EventType: EventRoomCreated,
		Timestamp: time.Now().UTC(),
		Metadata: map[string]any{
			"name":  room.Name,
			"price": room.Price,
		},
	}
}

func NewRoomDeletedLog(roomID, actorID string, byModerator bool) *RoomAuditLog {
	return &RoomAuditLog{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		ActorID:   actorID,
		EventType: EventRoomDeleted,
		Timestamp: time.Now().UTC(),
		Metadata: map[string]any{
			"by_moderator": byModerator,
		},
	}
}

func NewCommentAddedLog(roomID string, comment Comment) *RoomAuditLog {
	return &RoomAuditLog{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		ActorID:   comment.AuthorID,
		EventType: EventCommentAdded,
		Timestamp: time.Now().UTC(),
		Metadata: map[string]any{
			"comment_id": comment.ID,
		},
	}
}

// NewCommentOrphanedLog records a comment that was stored but never attached
// to its room.
func NewCommentOrphanedLog(roomID string, comment Comment, reason string) *RoomAuditLog {
	return &RoomAuditLog{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		ActorID:   comment.AuthorID,
		EventType: EventCommentOrphaned,
		Timestamp: time.Now().UTC(),
		Metadata: map[string]any{
			"comment_id": comment.ID,
			"reason":     reason,
		},
	}
}
