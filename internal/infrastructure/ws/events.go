package ws

const (
	CommentAdded   = "comment.added"
	CommentHistory = "comment.history"
	RoomDeleted    = "room.deleted"
)
