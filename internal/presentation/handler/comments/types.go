package comments

import (
	"time"

	"github.com/hilthontt/roomly/internal/infrastructure/profanity"
	"github.com/hilthontt/roomly/internal/infrastructure/validate"
)

var validateContent = validate.Field("content",
	validate.Required(),
	validate.MaxLength(2000),
	func(v string) error { return profanity.Default().Validate(v) },
)

// createCommentRequest represents the payload for commenting on a room
type createCommentRequest struct {
	Content string `json:"content" example:"Is the room still available?"`
}

type commentResponse struct {
	ID        string    `json:"id" example:"1f0c9a3e-2b8d-4e6f-a1c3-5d7e9f0b2c4a"`
	Content   string    `json:"content" example:"Is the room still available?"`
	AuthorID  string    `json:"authorId" example:"7d1b2f7e-4f6a-4d2c-9d7e-0b8c2a1f3e4d"`
	CreatedAt time.Time `json:"createdAt" example:"2024-01-01T12:00:00Z"`
}

// orphanedCommentResponse is returned when the comment was stored but could
// not be attached to the room.
type orphanedCommentResponse struct {
	CommentID string `json:"commentId" example:"1f0c9a3e-2b8d-4e6f-a1c3-5d7e9f0b2c4a"`
	Orphaned  bool   `json:"orphaned" example:"true"`
}

type commentViewResponse struct {
	ID                string `json:"id" example:"1f0c9a3e-2b8d-4e6f-a1c3-5d7e9f0b2c4a"`
	Content           string `json:"content" example:"Is the room still available?"`
	AuthorDisplayName string `json:"authorDisplayName" example:"alice"`
}
