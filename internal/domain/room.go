package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomAlreadyExists = errors.New("room already exists")
)

// Room is a listing owned by a user. OwnerID and CommentIDs are references
// resolved at read time; the room never embeds the referenced documents.
type Room struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Price       string    `bson:"price" json:"price"`
	OwnerID     string    `bson:"owner,omitempty" json:"owner,omitempty"`
	CommentIDs  []string  `bson:"comments" json:"comments"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// RoomFilter selects rooms for deletion. An empty OwnerID means the owner is
// not part of the match.
type RoomFilter struct {
	ID      string
	OwnerID string
}

type RoomRepository interface {
	List(ctx context.Context) ([]Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	Create(ctx context.Context, room *Room) error
	DeleteMatching(ctx context.Context, filter RoomFilter) (int64, error)
	AppendComment(ctx context.Context, roomID string, commentID string) error
}

func NewRoom(ownerID, name, description, price string) (*Room, error) {
	if ownerID == "" {
		return nil, ErrInvalidInput
	}

	return &Room{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Price:       price,
		OwnerID:     ownerID,
		CommentIDs:  make([]string, 0),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func (r *Room) HasOwner() bool {
	return r != nil && r.OwnerID != ""
}

func (r *Room) IsOwnedBy(userID string) bool {
	if !r.HasOwner() || userID == "" {
		return false
	}

	return r.OwnerID == userID
}
