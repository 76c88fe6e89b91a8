package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrCommentNotFound = errors.New("comment not found")

type Comment struct {
	ID        string    `bson:"_id" json:"id"`
	Content   string    `bson:"content" json:"content"`
	AuthorID  string    `bson:"author" json:"author"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	// GetByIDs returns the comments that exist, in no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]Comment, error)
}

func NewComment(authorID, content string) (*Comment, error) {
	if authorID == "" {
		return nil, ErrInvalidInput
	}

	return &Comment{
		ID:        uuid.NewString(),
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}, nil
}
