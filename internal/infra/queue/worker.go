package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/financekeem/internal/entity"
	"github.com/xavierca1/financekeem/internal/log"
)

type Notifier interface {
	Notify(ctx context.Context, event entity.Event) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
}

func NewWorker(ch *amqp.Channel, n Notifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: n,
	}
}

// Start consumes queueName until ctx is done or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	log.Infof("notification worker consuming %s", queueName)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := w.handle(ctx, d.Body); err != nil {
				log.WithError(err).WithField("message_id", d.MessageId).Error("notification dead-lettered")
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}
}

// handle delivers one message. An error means the message goes to the DLQ.
func (w *Worker) handle(ctx context.Context, body []byte) error {
	var event entity.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}

	log.WithFields(log.Fields{"type": event.Type, "lead_id": event.LeadID, "booking_id": event.BookingID}).
		Debug("notification received")

	if err := w.Notifier.Notify(ctx, event); err != nil {
		return fmt.Errorf("notify %s: %w", event.Type, err)
	}
	return nil
}
