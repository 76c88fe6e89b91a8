package rooms

import (
	"time"

	"github.com/hilthontt/roomly/internal/domain"
	"github.com/hilthontt/roomly/internal/infrastructure/profanity"
	"github.com/hilthontt/roomly/internal/infrastructure/validate"
	roomsService "github.com/hilthontt/roomly/internal/service/rooms"
)

var (
	validateName = validate.Field("name",
		validate.Required(),
		validate.MaxLength(100),
		profanityCheck,
	)
	validateDescription = validate.Field("description",
		validate.MaxLength(2000),
		profanityCheck,
	)
	validatePrice = validate.Field("price",
		validate.Optional(validate.Decimal()),
	)
)

func profanityCheck(v string) error {
	return profanity.Default().Validate(v)
}

// createRoomRequest represents the payload for listing a new room
type createRoomRequest struct {
	Name        string `json:"name" example:"Sunny loft near the station"`
	Description string `json:"description" example:"Quiet room, shared kitchen"`
	Price       string `json:"price" example:"450.00"`
}

func (r createRoomRequest) validate() error {
	if err := validateName(r.Name); err != nil {
		return err
	}
	if err := validateDescription(r.Description); err != nil {
		return err
	}
	return validatePrice(r.Price)
}

type createRoomResponse struct {
	ID string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

type userResponse struct {
	ID          string `json:"id" example:"7d1b2f7e-4f6a-4d2c-9d7e-0b8c2a1f3e4d"`
	DisplayName string `json:"displayName" example:"alice"`
}

type commentResponse struct {
	ID      string        `json:"id" example:"1f0c9a3e-2b8d-4e6f-a1c3-5d7e9f0b2c4a"`
	Content string        `json:"content" example:"Is the room still available?"`
	Author  *userResponse `json:"author"`
}

type roomSummaryResponse struct {
	ID           string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name         string    `json:"name" example:"Sunny loft near the station"`
	Description  string    `json:"description" example:"Quiet room, shared kitchen"`
	Price        string    `json:"price" example:"450.00"`
	OwnerID      string    `json:"ownerId,omitempty" example:"7d1b2f7e-4f6a-4d2c-9d7e-0b8c2a1f3e4d"`
	CommentCount int       `json:"commentCount" example:"3"`
	CreatedAt    time.Time `json:"createdAt" example:"2024-01-01T12:00:00Z"`
}

// roomDetailResponse is a room with owner and comments resolved. Owner and
// comment authors are null when the referenced user no longer exists.
type roomDetailResponse struct {
	ID                   string            `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name                 string            `json:"name" example:"Sunny loft near the station"`
	Description          string            `json:"description" example:"Quiet room, shared kitchen"`
	Price                string            `json:"price" example:"450.00"`
	Owner                *userResponse     `json:"owner"`
	Comments             []commentResponse `json:"comments"`
	CanDelete            bool              `json:"canDelete" example:"false"`
	ShowDeleteAffordance bool              `json:"showDeleteAffordance" example:"false"`
	CreatedAt            time.Time         `json:"createdAt" example:"2024-01-01T12:00:00Z"`
}

type auditLogResponse struct {
	ID        string         `json:"id"`
	EventType string         `json:"eventType" example:"room_created" enum:"room_created,room_deleted,comment_added,comment_orphaned"`
	ActorID   string         `json:"actorId,omitempty"`
	Timestamp time.Time      `json:"timestamp" example:"2024-01-01T12:00:00Z"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{ID: u.ID, DisplayName: u.DisplayName}
}

func toSummary(room domain.Room) roomSummaryResponse {
	return roomSummaryResponse{
		ID:           room.ID,
		Name:         room.Name,
		Description:  room.Description,
		Price:        room.Price,
		OwnerID:      room.OwnerID,
		CommentCount: len(room.CommentIDs),
		CreatedAt:    room.CreatedAt,
	}
}

func toDetail(d *roomsService.RoomDetail) roomDetailResponse {
	comments := make([]commentResponse, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, commentResponse{
			ID:      c.Comment.ID,
			Content: c.Comment.Content,
			Author:  toUserResponse(c.Author),
		})
	}

	return roomDetailResponse{
		ID:                   d.Room.ID,
		Name:                 d.Room.Name,
		Description:          d.Room.Description,
		Price:                d.Room.Price,
		Owner:                toUserResponse(d.Owner),
		Comments:             comments,
		CanDelete:            d.CanDelete,
		ShowDeleteAffordance: d.ShowDeleteAffordance,
		CreatedAt:            d.Room.CreatedAt,
	}
}
