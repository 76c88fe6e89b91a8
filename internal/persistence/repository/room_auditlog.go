package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hilthontt/roomly/internal/domain"
	"github.com/hilthontt/roomly/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	auditRetention    = 90 * 24 * time.Hour
	maxAuditPageSize  = 100
	auditByRoomIndex  = "room_id_timestamp"
	auditByEventIndex = "event_type_timestamp"
	auditTTLIndex     = "timestamp_ttl"
)

// auditTrail stores the room audit log. Entries are keyed by the event's own
// id, so a redelivered event is written once.
type auditTrail struct {
	coll *mongo.Collection
}

func NewRoomAuditLogRepository(database *mongo.Database) domain.RoomAuditRepository {
	return &auditTrail{coll: database.Collection(db.RoomAuditLogsCollection)}
}

func (a *auditTrail) Log(ctx context.Context, entry *domain.RoomAuditLog) error {
	if entry == nil || entry.ID == "" || entry.RoomID == "" {
		return domain.ErrInvalidInput
	}

	_, err := a.coll.InsertOne(ctx, entry)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("insert audit entry %s for room %s: %w", entry.EventType, entry.RoomID, err)
	}

	return nil
}

// GetByRoomID returns the newest entries first. limit is clamped to
// [1, maxAuditPageSize].
func (a *auditTrail) GetByRoomID(ctx context.Context, roomID string, limit int) ([]domain.RoomAuditLog, error) {
	if limit <= 0 || limit > maxAuditPageSize {
		limit = maxAuditPageSize
	}

	cursor, err := a.coll.Find(ctx,
		bson.M{"room_id": roomID},
		options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: -1}}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, fmt.Errorf("find audit entries for room %s: %w", roomID, err)
	}
	defer cursor.Close(ctx)

	entries := make([]domain.RoomAuditLog, 0, limit)
	for cursor.Next(ctx) {
		var entry domain.RoomAuditLog
		if err := cursor.Decode(&entry); err != nil {
			return nil, fmt.Errorf("decode audit entry: %w", err)
		}
		entry.Timestamp = entry.Timestamp.UTC()
		entries = append(entries, entry)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries for room %s: %w", roomID, err)
	}

	return entries, nil
}

func (a *auditTrail) EnsureIndexes(ctx context.Context) error {
	_, err := a.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "room_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName(auditByRoomIndex),
		},
		{
			Keys:    bson.D{{Key: "event_type", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName(auditByEventIndex),
		},
		{
			Keys: bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().
				SetName(auditTTLIndex).
				SetExpireAfterSeconds(int32(auditRetention / time.Second)),
		},
	})
	if err != nil {
		return fmt.Errorf("create audit indexes: %w", err)
	}

	return nil
}
