// Package events announces placed orders to a message broker.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/menu-interativo/back-end/internal/config"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// OrderPlaced is published once an order transaction has committed.
type OrderPlaced struct {
	OrderID     uuid.UUID       `json:"orderId"`
	OrderNumber string          `json:"orderNumber"`
	TableID     uuid.UUID       `json:"tableId"`
	WaiterID    uuid.UUID       `json:"waiterId"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"itemCount"`
	PlacedAt    time.Time       `json:"placedAt"`
}

// Publisher delivers order events.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlaced) error
	Close() error
}

// RoutingKey is used for OrderPlaced on topic exchanges.
const RoutingKey = "order.placed"

// New builds the publisher selected by cfg.Broker.
func New(cfg config.EventsConfig, logger zerolog.Logger) (Publisher, error) {
	switch cfg.Broker {
	case "kafka":
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger), nil
	case "rabbitmq":
		return NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange, logger)
	case "none", "":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown events broker: %s", cfg.Broker)
	}
}

// Nop discards every event.
type Nop struct{}

func (Nop) PublishOrderPlaced(context.Context, OrderPlaced) error { return nil }
func (Nop) Close() error                                          { return nil }
