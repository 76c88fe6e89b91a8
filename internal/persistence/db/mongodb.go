package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hilthontt/roomly/internal/infrastructure/configs"
	"github.com/hilthontt/roomly/internal/infrastructure/logging"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	RoomsCollection         = "rooms"
	CommentsCollection      = "comments"
	UsersCollection         = "users"
	RoomAuditLogsCollection = "room_audit_logs"

	defaultConnectTimeout = 20 * time.Second
	disconnectTimeout     = 10 * time.Second
)

var errMongoConfig = errors.New("invalid mongodb config")

// Store is a connected client bound to the application database.
type Store struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Open connects and pings the primary before returning, so a bad URI fails at
// startup instead of on the first request.
func Open(ctx context.Context, cfg configs.MongoConfig, logger logging.Logger) (*Store, error) {
	switch {
	case cfg.URI == "":
		return nil, fmt.Errorf("%w: uri is required", errMongoConfig)
	case cfg.Database == "":
		return nil, fmt.Errorf("%w: database is required", errMongoConfig)
	}

	timeout := cfg.ConnectionTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	store := &Store{Client: client, Database: client.Database(cfg.Database)}
	if err := store.Ping(connectCtx); err != nil {
		_ = store.Close(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logger.Info(logging.MongoDB, logging.Startup, "connected to mongodb", map[logging.ExtraKey]any{
		"database": cfg.Database,
	})

	return store, nil
}

// Ping doubles as the readiness check.
func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.Client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, disconnectTimeout)
	defer cancel()

	if err := s.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect from mongodb: %w", err)
	}

	return nil
}
