package events

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/pkg/mq"
)

// Sender is the transport under Publisher: *mq.Publisher or mq.NopPublisher
type Sender interface {
	Publish(ctx context.Context, msg mq.Message) error
}

// Publisher sends booking events with the event type as routing key and
// the event id as message id
type Publisher struct {
	sender Sender
}

func NewPublisher(sender Sender) *Publisher {
	return &Publisher{sender: sender}
}

func (p *Publisher) Publish(ctx context.Context, e BookingEvent) error {
	return p.sender.Publish(ctx, mq.Message{
		RoutingKey: e.Type,
		ID:         e.ID,
		OccurredAt: e.OccurredAt,
		Body:       e,
	})
}
