package contracts

// AmqpMessage is the message structure for AMQP.
type AmqpMessage struct {
	ActorID string `json:"actorId"`
	Data    []byte `json:"data"`
}

// Routing keys - using consistent event/command patterns
const (
	EventRoomCreated     = "room.created"
	EventRoomDeleted     = "room.deleted"
	EventCommentAdded    = "comment.added"
	EventCommentOrphaned = "comment.orphaned"
)

// RoomEvents lists every routing key bound to the rooms queue.
var RoomEvents = []string{
	EventRoomCreated,
	EventRoomDeleted,
	EventCommentAdded,
	EventCommentOrphaned,
}
