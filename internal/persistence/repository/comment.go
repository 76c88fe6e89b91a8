package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hilthontt/roomly/internal/domain"
	"github.com/hilthontt/roomly/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type commentRepository struct {
	db *mongo.Database
}

func NewCommentRepository(db *mongo.Database) domain.CommentRepository {
	return &commentRepository{
		db: db,
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if comment == nil || comment.ID == "" {
		return domain.ErrInvalidInput
	}

	collection := r.db.Collection(db.CommentsCollection)

	if _, err := collection.InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("insert comment %s: %w", comment.ID, err)
	}

	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	collection := r.db.Collection(db.CommentsCollection)

	var comment domain.Comment
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find comment %s: %w", id, err)
	}

	return &comment, nil
}

func (r *commentRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Comment, error) {
	comments := make([]domain.Comment, 0, len(ids))
	if len(ids) == 0 {
		return comments, nil
	}

	collection := r.db.Collection(db.CommentsCollection)

	cursor, err := collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	return comments, nil
}
