package models

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// ListAgentBookingsRequest selects an agent's bookings
type ListAgentBookingsRequest struct {
	AgentEmail string
	OpenOnly   bool
	From       *time.Time
	To         *time.Time
}

// BookingResponse is a booking with the actions the owner may still take
type BookingResponse struct {
	ID           int64      `json:"id"`
	Date         string     `json:"date"`
	StartTime    string     `json:"startTime"`
	EndTime      string     `json:"endTime"`
	AgentEmail   string     `json:"agentEmail"`
	ClientName   string     `json:"clientName"`
	Price        float64    `json:"price"`
	Finalized    bool       `json:"finalized"`
	ClientNoShow bool       `json:"clientNoShow"`
	FinalizedAt  *time.Time `json:"finalizedAt,omitempty"`
	CanDelete    bool       `json:"canDelete"`
	Elapsed      bool       `json:"elapsed"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// BookingListResponse is a list of bookings
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

func FromDomainBooking(b *domain.Booking, canDelete, elapsed bool) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:           b.ID,
		Date:         b.DateKey(),
		StartTime:    b.StartTime.String(),
		EndTime:      b.EndTime.String(),
		AgentEmail:   b.AgentEmail,
		ClientName:   b.ClientName,
		Price:        b.Price,
		Finalized:    b.Finalized,
		ClientNoShow: b.ClientNoShow,
		FinalizedAt:  b.FinalizedAt,
		CanDelete:    canDelete,
		Elapsed:      elapsed,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
