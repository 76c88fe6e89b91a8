package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hilthontt/roomly/internal/domain"
	"github.com/hilthontt/roomly/internal/infrastructure/contracts"
	"github.com/hilthontt/roomly/internal/infrastructure/logging"
	"github.com/hilthontt/roomly/internal/infrastructure/messaging"
	"github.com/rabbitmq/amqp091-go"
)

type MessageConsumer interface {
	ConsumeMessages(ctx context.Context, queueName string, handler func(context.Context, amqp091.Delivery) error) error
}

// RoomConsumer turns room events into audit log entries.
type RoomConsumer struct {
	consumer MessageConsumer
	audit    domain.RoomAuditRepository
	logger   logging.Logger
}

func NewRoomConsumer(consumer MessageConsumer, audit domain.RoomAuditRepository, logger logging.Logger) *RoomConsumer {
	return &RoomConsumer{
		consumer: consumer,
		audit:    audit,
		logger:   logger,
	}
}

func (c *RoomConsumer) Listen(ctx context.Context) error {
	return c.consumer.ConsumeMessages(ctx, messaging.RoomsQueue, c.Handle)
}

func (c *RoomConsumer) Handle(ctx context.Context, msg amqp091.Delivery) error {
	var message contracts.AmqpMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		return fmt.Errorf("unmarshal envelope: %w", err)
	}

	entry, err := auditEntry(msg.RoutingKey, message)
	if err != nil {
		return err
	}

	if err := c.audit.Log(ctx, entry); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}

	c.logger.Debug(logging.RabbitMQ, logging.Consume, "audit log written", map[logging.ExtraKey]any{
		logging.RoutingKey: msg.RoutingKey,
		logging.RoomID:     entry.RoomID,
	})

	return nil
}

func auditEntry(routingKey string, message contracts.AmqpMessage) (*domain.RoomAuditLog, error) {
	switch routingKey {
	case contracts.EventRoomCreated:
		var payload messaging.RoomEventData
		if err := json.Unmarshal(message.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", routingKey, err)
		}
		return domain.NewRoomCreatedLog(payload.Room), nil

	case contracts.EventRoomDeleted:
		var payload messaging.RoomDeletedEventData
		if err := json.Unmarshal(message.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", routingKey, err)
		}
		return domain.NewRoomDeletedLog(payload.RoomID, message.ActorID, payload.ByModerator), nil

	case contracts.EventCommentAdded, contracts.EventCommentOrphaned:
		var payload messaging.CommentEventData
		if err := json.Unmarshal(message.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", routingKey, err)
		}
		if routingKey == contracts.EventCommentOrphaned {
			return domain.NewCommentOrphanedLog(payload.RoomID, payload.Comment, payload.Reason), nil
		}
		return domain.NewCommentAddedLog(payload.RoomID, payload.Comment), nil
	}

	return nil, fmt.Errorf("unknown routing key %q", routingKey)
}
