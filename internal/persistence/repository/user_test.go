package repository

import (
	"context"
	"testing"

	"github.com/hilthontt/roomly/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const (
	usersNS    = "roomly.users"
	commentsNS = "roomly.comments"
)

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("duplicate display name", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Create(ctx, &domain.User{ID: "u1", DisplayName: "alice"})
		assert.ErrorIs(mt, err, domain.ErrDisplayNameTaken)
	})

	mt.Run("get by display name", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(1, usersNS, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "u1"},
				{Key: "display_name", Value: "alice"},
				{Key: "role", Value: "moderator"},
			}))

		user, err := repo.GetByDisplayName(ctx, "alice")
		require.NoError(mt, err)
		assert.Equal(mt, "u1", user.ID)
		assert.True(mt, user.IsModerator())
	})

	mt.Run("missing user", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		_, err := repo.GetByID(ctx, "ghost")
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})

	mt.Run("empty id batch skips the store", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)

		users, err := repo.GetByIDs(ctx, nil)
		require.NoError(mt, err)
		assert.Empty(mt, users)
	})

	mt.Run("batch lookup", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, usersNS, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "u1"}, {Key: "display_name", Value: "alice"}},
				bson.D{{Key: "_id", Value: "u2"}, {Key: "display_name", Value: "bob"}},
			),
			mtest.CreateCursorResponse(0, usersNS, mtest.NextBatch),
		)

		users, err := repo.GetByIDs(ctx, []string{"u1", "u2", "u3"})
		require.NoError(mt, err)
		assert.Len(mt, users, 2)
	})
}

func TestCommentRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create", func(mt *mtest.T) {
		repo := NewCommentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, repo.Create(ctx, &domain.Comment{ID: "c1", Content: "hi", AuthorID: "u1"}))
	})

	mt.Run("create rejects empty id", func(mt *mtest.T) {
		repo := NewCommentRepository(mt.DB)

		assert.ErrorIs(mt, repo.Create(ctx, &domain.Comment{}), domain.ErrInvalidInput)
	})

	mt.Run("batch lookup", func(mt *mtest.T) {
		repo := NewCommentRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, commentsNS, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "c1"}, {Key: "content", Value: "hi"}, {Key: "author", Value: "u1"}},
			),
			mtest.CreateCursorResponse(0, commentsNS, mtest.NextBatch),
		)

		comments, err := repo.GetByIDs(ctx, []string{"c1", "c2"})
		require.NoError(mt, err)
		require.Len(mt, comments, 1)
		assert.Equal(mt, "u1", comments[0].AuthorID)
	})

	mt.Run("missing comment", func(mt *mtest.T) {
		repo := NewCommentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, commentsNS, mtest.FirstBatch))

		_, err := repo.GetByID(ctx, "nope")
		assert.ErrorIs(mt, err, domain.ErrCommentNotFound)
	})
}
