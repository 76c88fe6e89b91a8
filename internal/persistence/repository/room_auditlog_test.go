package repository

import (
	"context"
	"testing"
	"time"

	"github.com/hilthontt/roomly/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const auditNS = "roomly.room_audit_logs"

func TestRoomAuditLogRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("log rejects incomplete entries", func(mt *mtest.T) {
		repo := NewRoomAuditLogRepository(mt.DB)

		assert.ErrorIs(mt, repo.Log(ctx, nil), domain.ErrInvalidInput)
		assert.ErrorIs(mt, repo.Log(ctx, &domain.RoomAuditLog{ID: "a1"}), domain.ErrInvalidInput)
	})

	mt.Run("redelivered entry is accepted once", func(mt *mtest.T) {
		repo := NewRoomAuditLogRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		entry := domain.NewRoomCreatedLog(domain.Room{ID: "r1", OwnerID: "u1", Name: "Red Room"})
		assert.NoError(mt, repo.Log(ctx, entry))
	})

	mt.Run("insert failure is wrapped", func(mt *mtest.T) {
		repo := NewRoomAuditLogRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
			Name:    "BadValue",
		}))

		err := repo.Log(ctx, domain.NewRoomDeletedLog("r1", "u1", false))
		assert.ErrorContains(mt, err, "insert audit entry room_deleted for room r1")
	})

	mt.Run("newest entries first", func(mt *mtest.T) {
		repo := NewRoomAuditLogRepository(mt.DB)

		newer := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
		older := newer.Add(-time.Hour)
		first := mtest.CreateCursorResponse(1, auditNS, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "a2"},
				{Key: "room_id", Value: "r1"},
				{Key: "event_type", Value: "comment_added"},
				{Key: "timestamp", Value: newer},
			},
			bson.D{
				{Key: "_id", Value: "a1"},
				{Key: "room_id", Value: "r1"},
				{Key: "event_type", Value: "room_created"},
				{Key: "timestamp", Value: older},
			})
		done := mtest.CreateCursorResponse(0, auditNS, mtest.NextBatch)
		mt.AddMockResponses(first, done)

		entries, err := repo.GetByRoomID(ctx, "r1", 0)
		require.NoError(mt, err)
		require.Len(mt, entries, 2)
		assert.Equal(mt, "a2", entries[0].ID)
		assert.Equal(mt, domain.EventCommentAdded, entries[0].EventType)
		assert.Equal(mt, time.UTC, entries[0].Timestamp.Location())

		// limit 0 falls back to the page size
		find := mt.GetStartedEvent()
		require.NotNil(mt, find)
		assert.Equal(mt, int64(maxAuditPageSize), find.Command.Lookup("limit").AsInt64())
	})

	mt.Run("room without entries", func(mt *mtest.T) {
		repo := NewRoomAuditLogRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, auditNS, mtest.FirstBatch))

		entries, err := repo.GetByRoomID(ctx, "r1", 10)
		require.NoError(mt, err)
		assert.NotNil(mt, entries)
		assert.Empty(mt, entries)
	})

	mt.Run("indexes", func(mt *mtest.T) {
		repo := NewRoomAuditLogRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, repo.EnsureIndexes(ctx))

		create := mt.GetStartedEvent()
		require.NotNil(mt, create)
		indexes, err := create.Command.Lookup("indexes").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, indexes, 3)

		ttl := indexes[2].Document()
		assert.Equal(mt, auditTTLIndex, ttl.Lookup("name").StringValue())
		assert.Equal(mt, int64(7776000), ttl.Lookup("expireAfterSeconds").AsInt64())
	})
}
