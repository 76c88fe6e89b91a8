package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes creates the indexes every collection relies on. Safe to call
// on each startup.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	indexers := map[string]indexer{
		"rooms":           &roomRepository{db: database},
		"users":           &userRepository{db: database},
		"room_audit_logs": NewRoomAuditLogRepository(database),
	}

	for name, idx := range indexers {
		if err := idx.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", name, err)
		}
	}

	return nil
}
