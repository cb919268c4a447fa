package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// Routing keys of booking events on the studio exchange
const (
	BookingCreated   = "booking.created"
	BookingDeleted   = "booking.deleted"
	BookingFinalized = "booking.finalized"
	BookingNoShow    = "booking.no_show"
)

// BookingEvent is the JSON payload of every booking event.
// ID is unique per event so consumers can drop redelivered messages.
type BookingEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	BookingID  int64     `json:"bookingId"`
	Date       string    `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	AgentEmail string    `json:"agentEmail"`
	Price      float64   `json:"price"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewBookingEvent(eventType string, b *domain.Booking, actor string, at time.Time) BookingEvent {
	return BookingEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		BookingID:  b.ID,
		Date:       b.DateKey(),
		StartTime:  b.StartTime.String(),
		EndTime:    b.EndTime.String(),
		AgentEmail: b.AgentEmail,
		Price:      b.Price,
		Actor:      domain.NormalizeEmail(actor),
		OccurredAt: at.UTC(),
	}
}

// OutcomeEvent maps a booking outcome to its routing key
func OutcomeEvent(o domain.Outcome) string {
	if o == domain.OutcomeNoShow {
		return BookingNoShow
	}
	return BookingFinalized
}
