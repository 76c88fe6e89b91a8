package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hilthontt/roomly/internal/infrastructure/contracts"
	"github.com/hilthontt/roomly/internal/infrastructure/logging"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	RoomlyExchange     = "roomly"
	DeadLetterExchange = "dlx"
)

type RabbitMQ struct {
	conn    *amqp.Connection
	Channel *amqp.Channel
	logger  logging.Logger
}

func NewRabbitMQ(uri string, logger logging.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	rmq := &RabbitMQ{
		conn:    conn,
		Channel: ch,
		logger:  logger,
	}

	if err := rmq.setupExchangesAndQueues(); err != nil {
		rmq.Close()
		return nil, fmt.Errorf("failed to setup exchanges and queues: %w", err)
	}

	return rmq, nil
}

func (r *RabbitMQ) Close() {
	if r.Channel != nil {
		r.Channel.Close()
	}
	if r.conn != nil {
		r.conn.Close()
	}
}

// Ping reports whether the broker connection is still open.
func (r *RabbitMQ) Ping(context.Context) error {
	if r.conn == nil || r.conn.IsClosed() {
		return amqp.ErrClosed
	}
	return nil
}

func (r *RabbitMQ) PublishMessage(ctx context.Context, routingKey string, message contracts.AmqpMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return r.Channel.PublishWithContext(ctx,
		RoomlyExchange, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// ConsumeMessages blocks until ctx is done or the delivery channel closes.
// A handler error dead-letters the delivery; it is never requeued.
func (r *RabbitMQ) ConsumeMessages(ctx context.Context, queueName string, handler func(context.Context, amqp.Delivery) error) error {
	if err := r.Channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := r.Channel.ConsumeWithContext(ctx,
		queueName, // queue
		"",        // consumer
		false,     // auto-ack
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}

			if err := handler(ctx, msg); err != nil {
				r.logger.Error(logging.RabbitMQ, logging.Consume, "failed to handle message", map[logging.ExtraKey]any{
					logging.RoutingKey:   msg.RoutingKey,
					logging.ErrorMessage: err.Error(),
				})
				if nackErr := msg.Nack(false, false); nackErr != nil {
					r.logger.Errorf("failed to nack message: %v", nackErr)
				}
				continue
			}

			if ackErr := msg.Ack(false); ackErr != nil {
				r.logger.Errorf("failed to ack message: %v", ackErr)
			}
		}
	}
}

func (r *RabbitMQ) setupExchangesAndQueues() error {
	if err := r.setupDeadLetterExchange(); err != nil {
		return err
	}

	if err := r.Channel.ExchangeDeclare(
		RoomlyExchange, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", RoomlyExchange, err)
	}

	return r.declareAndBindQueue(RoomsQueue, contracts.RoomEvents, RoomlyExchange)
}

func (r *RabbitMQ) setupDeadLetterExchange() error {
	if err := r.Channel.ExchangeDeclare(
		DeadLetterExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare dead letter exchange: %w", err)
	}

	q, err := r.Channel.QueueDeclare(
		DeadLetterQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare dead letter queue: %w", err)
	}

	// Catch everything that lands in the DLX
	if err := r.Channel.QueueBind(q.Name, "#", DeadLetterExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind dead letter queue: %w", err)
	}

	return nil
}

func (r *RabbitMQ) declareAndBindQueue(queueName string, messageTypes []string, exchange string) error {
	// Add dead letter configuration
	args := amqp.Table{
		"x-dead-letter-exchange": DeadLetterExchange,
	}

	q, err := r.Channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		args,      // arguments with DLX config
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	for _, msg := range messageTypes {
		if err := r.Channel.QueueBind(
			q.Name,   // queue name
			msg,      // routing key
			exchange, // exchange
			false,
			nil,
		); err != nil {
			return fmt.Errorf("failed to bind queue to %s: %w", queueName, err)
		}
	}

	return nil
}
