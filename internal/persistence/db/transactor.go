package db

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Transactor runs fn so that every store call made with the context it
// receives commits or aborts together.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type mongoTransactor struct {
	client *mongo.Client
}

// NewMongoTransactor needs a replica set or sharded cluster; standalone
// servers reject transactions.
func NewMongoTransactor(client *mongo.Client) Transactor {
	return &mongoTransactor{client: client}
}

// WithinTransaction commits once. Unlike session.WithTransaction it never
// retries on transient errors.
func (t *mongoTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(context.Background())

	return mongo.WithSession(ctx, session, func(sessCtx mongo.SessionContext) error {
		if err := sessCtx.StartTransaction(); err != nil {
			return err
		}

		if err := fn(sessCtx); err != nil {
			_ = sessCtx.AbortTransaction(context.Background())
			return err
		}

		return sessCtx.CommitTransaction(sessCtx)
	})
}
