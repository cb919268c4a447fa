package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-StudioBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date       string  `json:"date"`      // "2025-10-15"
	StartTime  string  `json:"startTime"` // "10:00"
	EndTime    string  `json:"endTime"`   // "12:00"
	ClientName string  `json:"clientName"`
	Price      float64 `json:"price"`
}

type SlotCostResponse struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	NewSeat bool   `json:"newSeat"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64              `json:"id"`
	Date       string             `json:"date"`
	StartTime  string             `json:"startTime"`
	EndTime    string             `json:"endTime"`
	AgentEmail string             `json:"agentEmail"`
	ClientName string             `json:"clientName"`
	Price      float64            `json:"price"`
	Slots      []SlotCostResponse `json:"slots"`
	CreatedAt  string             `json:"createdAt"`
	UpdatedAt  string             `json:"updatedAt"`
}

func (r *CreateBookingRequest) ToUseCaseRequest(agentEmail string) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &createBooking.Request{
		AgentEmail: agentEmail,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		ClientName: r.ClientName,
		Price:      r.Price,
	}, nil
}

func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:         resp.ID,
		Date:       resp.Date.Format(domain.DateFormat),
		StartTime:  resp.StartTime.String(),
		EndTime:    resp.EndTime.String(),
		AgentEmail: resp.AgentEmail,
		ClientName: resp.ClientName,
		Price:      resp.Price,
		Slots:      make([]SlotCostResponse, 0, len(resp.Slots)),
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotCostResponse{Start: s.Start.String(), End: s.End.String(), NewSeat: s.NewSeat})
	}
	return out
}
