package messaging

import "github.com/hilthontt/roomly/internal/domain"

const (
	RoomsQueue      = "rooms"
	DeadLetterQueue = "dead_letter_queue"
)

type RoomEventData struct {
	Room domain.Room `json:"room"`
}

type RoomDeletedEventData struct {
	RoomID      string `json:"roomId"`
	ByModerator bool   `json:"byModerator"`
}

type CommentEventData struct {
	RoomID  string         `json:"roomId"`
	Comment domain.Comment `json:"comment"`
	Reason  string         `json:"reason,omitempty"`
}
