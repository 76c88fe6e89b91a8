package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hilthontt/roomly/internal/domain"
	"github.com/hilthontt/roomly/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type roomRepository struct {
	db *mongo.Database
}

func NewRoomRepository(db *mongo.Database) domain.RoomRepository {
	return &roomRepository{
		db: db,
	}
}

func (r *roomRepository) List(ctx context.Context) ([]domain.Room, error) {
	collection := r.db.Collection(db.RoomsCollection)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find rooms: %w", err)
	}
	defer cursor.Close(ctx)

	rooms := make([]domain.Room, 0)
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("decode rooms: %w", err)
	}

	return rooms, nil
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	collection := r.db.Collection(db.RoomsCollection)

	var room domain.Room
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find room %s: %w", id, err)
	}

	if room.CommentIDs == nil {
		room.CommentIDs = make([]string, 0)
	}

	return &room, nil
}

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	if room == nil || room.ID == "" {
		return domain.ErrInvalidInput
	}

	collection := r.db.Collection(db.RoomsCollection)

	_, err := collection.InsertOne(ctx, room)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrRoomAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert room %s: %w", room.ID, err)
	}

	return nil
}

func (r *roomRepository) DeleteMatching(ctx context.Context, filter domain.RoomFilter) (int64, error) {
	if filter.ID == "" {
		return 0, domain.ErrInvalidInput
	}

	collection := r.db.Collection(db.RoomsCollection)

	res, err := collection.DeleteOne(ctx, roomDeleteFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("delete room %s: %w", filter.ID, err)
	}

	return res.DeletedCount, nil
}

func (r *roomRepository) AppendComment(ctx context.Context, roomID string, commentID string) error {
	collection := r.db.Collection(db.RoomsCollection)

	res, err := collection.UpdateOne(ctx,
		bson.M{"_id": roomID},
		bson.M{"$push": bson.M{"comments": commentID}},
	)
	if err != nil {
		return fmt.Errorf("append comment to room %s: %w", roomID, err)
	}

	if res.MatchedCount == 0 {
		return domain.ErrRoomNotFound
	}

	return nil
}

func (r *roomRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(db.RoomsCollection)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func roomDeleteFilter(filter domain.RoomFilter) bson.M {
	query := bson.M{"_id": filter.ID}
	if filter.OwnerID != "" {
		query["owner"] = filter.OwnerID
	}

	return query
}
