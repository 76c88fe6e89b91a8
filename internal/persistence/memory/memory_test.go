package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hilthontt/roomly/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomRepository_ListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository()

	for _, id := range []string{"b", "a", "c"} {
		require.NoError(t, repo.Create(ctx, &domain.Room{ID: id, OwnerID: "u1"}))
	}

	rooms, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 3)
	assert.Equal(t, "b", rooms[0].ID)
	assert.Equal(t, "a", rooms[1].ID)
	assert.Equal(t, "c", rooms[2].ID)
}

func TestRoomRepository_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository()

	require.NoError(t, repo.Create(ctx, &domain.Room{ID: "r1"}))
	assert.ErrorIs(t, repo.Create(ctx, &domain.Room{ID: "r1"}), domain.ErrRoomAlreadyExists)
	assert.ErrorIs(t, repo.Create(ctx, nil), domain.ErrInvalidInput)
}

func TestRoomRepository_DeleteMatching(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository()
	require.NoError(t, repo.Create(ctx, &domain.Room{ID: "r1", OwnerID: "owner"}))
	require.NoError(t, repo.Create(ctx, &domain.Room{ID: "r2"}))

	deleted, err := repo.DeleteMatching(ctx, domain.RoomFilter{ID: "r1", OwnerID: "intruder"})
	require.NoError(t, err)
	assert.Zero(t, deleted)

	deleted, err = repo.DeleteMatching(ctx, domain.RoomFilter{ID: "r2", OwnerID: "owner"})
	require.NoError(t, err)
	assert.Zero(t, deleted, "ownerless room never matches an owner filter")

	deleted, err = repo.DeleteMatching(ctx, domain.RoomFilter{ID: "missing"})
	require.NoError(t, err)
	assert.Zero(t, deleted)

	deleted, err = repo.DeleteMatching(ctx, domain.RoomFilter{ID: "r1", OwnerID: "owner"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = repo.DeleteMatching(ctx, domain.RoomFilter{ID: "r2"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	rooms, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestRoomRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository()
	require.NoError(t, repo.Create(ctx, &domain.Room{ID: "r1", CommentIDs: []string{}}))

	room, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	room.CommentIDs = append(room.CommentIDs, "forged")

	require.NoError(t, repo.AppendComment(ctx, "r1", "c1"))
	room, err = repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, room.CommentIDs)

	assert.ErrorIs(t, repo.AppendComment(ctx, "missing", "c1"), domain.ErrRoomNotFound)
}

func TestRoomRepository_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository()
	require.NoError(t, repo.Create(ctx, &domain.Room{ID: "r1"}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.AppendComment(ctx, "r1", fmt.Sprintf("c%d", i)))
		}(i)
	}
	wg.Wait()

	room, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, room.CommentIDs, 50)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.Create(ctx, &domain.User{ID: "u1", DisplayName: "alice"}))
	assert.ErrorIs(t, repo.Create(ctx, &domain.User{ID: "u2", DisplayName: "alice"}), domain.ErrDisplayNameTaken)

	user, err := repo.GetByDisplayName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	_, err = repo.GetByID(ctx, "u2")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	users, err := repo.GetByIDs(ctx, []string{"u1", "u2"})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCommentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCommentRepository()

	comment := &domain.Comment{Content: "hello", AuthorID: "u1"}
	require.NoError(t, repo.Create(ctx, comment))
	assert.NotEmpty(t, comment.ID)
	assert.False(t, comment.CreatedAt.IsZero())

	comments, err := repo.GetByIDs(ctx, []string{"missing", comment.ID})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "hello", comments[0].Content)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}

func TestRoomAuditRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomAuditRepository(2)
	base := time.Now()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Log(ctx, &domain.RoomAuditLog{
			ID:        fmt.Sprintf("l%d", i),
			RoomID:    "r1",
			EventType: domain.EventCommentAdded,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	logs, err := repo.GetByRoomID(ctx, "r1", 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "l2", logs[0].ID)
	assert.Equal(t, "l1", logs[1].ID)

	logs, err = repo.GetByRoomID(ctx, "r1", 1)
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	assert.ErrorIs(t, repo.Log(ctx, &domain.RoomAuditLog{}), domain.ErrInvalidInput)
}
