package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

const EventOrderPlaced = "order.placed"

type channelSource interface {
	Get() (*amqp.Channel, error)
	Put(ch *amqp.Channel)
}

type Publisher struct {
	pool      channelSource
	queueName string
	timeout   time.Duration
}

func NewPublisher(pool *ChannelPool, queueName string) *Publisher {
	return &Publisher{
		pool:      pool,
		queueName: queueName,
		timeout:   5 * time.Second,
	}
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, evt domain.OrderPlaced) error {
	body, err := encodeOrderPlaced(evt)
	if err != nil {
		return err
	}

	ch, err := p.pool.Get()
	if err != nil {
		return fmt.Errorf("failed to get channel from pool: %w", err)
	}
	defer p.pool.Put(ch)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = ch.PublishWithContext(ctx, "", p.queueName, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Type:         EventOrderPlaced,
		MessageId:    evt.OrderID,
		Timestamp:    evt.PlacedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", EventOrderPlaced, err)
	}
	return nil
}

func encodeOrderPlaced(evt domain.OrderPlaced) ([]byte, error) {
	body, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return body, nil
}
