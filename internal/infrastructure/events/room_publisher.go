package events

import (
	"context"
	"encoding/json"

	"github.com/hilthontt/roomly/internal/domain"
	"github.com/hilthontt/roomly/internal/infrastructure/contracts"
	"github.com/hilthontt/roomly/internal/infrastructure/messaging"
)

type MessagePublisher interface {
	PublishMessage(ctx context.Context, routingKey string, message contracts.AmqpMessage) error
}

type RoomPublisher struct {
	publisher MessagePublisher
}

func NewRoomPublisher(publisher MessagePublisher) *RoomPublisher {
	return &RoomPublisher{
		publisher: publisher,
	}
}

func (p *RoomPublisher) PublishRoomCreated(ctx context.Context, room domain.Room) error {
	return p.publish(ctx, contracts.EventRoomCreated, room.OwnerID, messaging.RoomEventData{
		Room: room,
	})
}

func (p *RoomPublisher) PublishRoomDeleted(ctx context.Context, roomID string, actor domain.Caller) error {
	return p.publish(ctx, contracts.EventRoomDeleted, actor.ID, messaging.RoomDeletedEventData{
		RoomID:      roomID,
		ByModerator: actor.IsModerator(),
	})
}

func (p *RoomPublisher) PublishCommentAdded(ctx context.Context, roomID string, comment domain.Comment) error {
	return p.publish(ctx, contracts.EventCommentAdded, comment.AuthorID, messaging.CommentEventData{
		RoomID:  roomID,
		Comment: comment,
	})
}

func (p *RoomPublisher) PublishCommentOrphaned(ctx context.Context, roomID string, comment domain.Comment, cause error) error {
	data := messaging.CommentEventData{
		RoomID:  roomID,
		Comment: comment,
	}
	if cause != nil {
		data.Reason = cause.Error()
	}

	return p.publish(ctx, contracts.EventCommentOrphaned, comment.AuthorID, data)
}

func (p *RoomPublisher) publish(ctx context.Context, routingKey, actorID string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.publisher.PublishMessage(ctx, routingKey, contracts.AmqpMessage{
		ActorID: actorID,
		Data:    data,
	})
}

// NopPublisher is used when RabbitMQ is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishRoomCreated(context.Context, domain.Room) error                       { return nil }
func (NopPublisher) PublishRoomDeleted(context.Context, string, domain.Caller) error             { return nil }
func (NopPublisher) PublishCommentAdded(context.Context, string, domain.Comment) error           { return nil }
func (NopPublisher) PublishCommentOrphaned(context.Context, string, domain.Comment, error) error { return nil }
