package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// amqpChannel is the part of *amqp091.Channel the publisher needs.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type rabbitPublisher struct {
	conn     *amqp091.Connection
	channel  amqpChannel
	exchange string
	logger   zerolog.Logger
}

// NewRabbitMQPublisher dials url and declares a durable topic exchange.
func NewRabbitMQPublisher(url, exchange string, logger zerolog.Logger) (Publisher, error) {
	logger = logger.With().Str("component", "rabbitmq-publisher").Str("exchange", exchange).Logger()

	conn, err := amqp091.Dial(url)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to RabbitMQ")
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	logger.Info().Msg("RabbitMQ publisher initialised")

	p := newRabbitPublisher(ch, exchange, logger)
	p.conn = conn
	return p, nil
}

func newRabbitPublisher(ch amqpChannel, exchange string, logger zerolog.Logger) *rabbitPublisher {
	return &rabbitPublisher{channel: ch, exchange: exchange, logger: logger}
}

func (p *rabbitPublisher) PublishOrderPlaced(ctx context.Context, event OrderPlaced) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx, p.exchange, RoutingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    event.PlacedAt,
		MessageId:    event.OrderID.String(),
	})
	if err != nil {
		p.logger.Error().Err(err).Str("order_id", event.OrderID.String()).Msg("failed to publish order event")
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	p.logger.Debug().
		Str("order_id", event.OrderID.String()).
		Int("message_size", len(body)).
		Msg("order event published")
	return nil
}

func (p *rabbitPublisher) Close() error {
	err := p.channel.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}
