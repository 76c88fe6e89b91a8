package ws

type WSMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	Data   any    `json:"data"`
}

// Payload structs
type CommentPayload struct {
	ID                string `json:"id,omitempty"`
	Content           string `json:"content"`
	AuthorDisplayName string `json:"authorDisplayName"`
}

type CommentHistoryPayload struct {
	Comments []CommentPayload `json:"comments"`
}

type RoomDeletedPayload struct {
	RoomID string `json:"roomId"`
}

func NewCommentAdded(roomID string, comment CommentPayload) *WSMessage {
	return &WSMessage{
		Type:   CommentAdded,
		RoomID: roomID,
		Data:   comment,
	}
}

func NewCommentHistory(roomID string, comments []CommentPayload) *WSMessage {
	return &WSMessage{
		Type:   CommentHistory,
		RoomID: roomID,
		Data:   CommentHistoryPayload{Comments: comments},
	}
}

func NewRoomDeleted(roomID string) *WSMessage {
	return &WSMessage{
		Type:   RoomDeleted,
		RoomID: roomID,
		Data:   RoomDeletedPayload{RoomID: roomID},
	}
}
