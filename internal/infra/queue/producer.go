package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/financekeem/internal/entity"
	"github.com/xavierca1/financekeem/internal/log"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	mu sync.Mutex
	ch publisher
}

func NewProducer(ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{ch: ch}
}

func (p *RabbitMQProducer) Publish(ctx context.Context, event entity.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event.Type,
			Timestamp:    event.OccurredAt,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

// LogPublisher stands in for the broker when none is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event entity.Event) error {
	log.WithFields(log.Fields{
		"type":       event.Type,
		"lead_id":    event.LeadID,
		"booking_id": event.BookingID,
		"source":     event.Source,
	}).Info("event")
	return nil
}
