package get_day_schedule

import (
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	getDaySchedule "github.com/m04kA/SMC-StudioBookingService/internal/usecase/get_day_schedule"
)

type SlotResponse struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	Total      int    `json:"total"`
	Restricted int    `json:"restricted"`
	FreeSeats  int    `json:"freeSeats"`
	Full       bool   `json:"full"`
}

type PartResponse struct {
	ID           int64    `json:"id"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	ClientName   *string  `json:"clientName,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Finalized    bool     `json:"finalized"`
	ClientNoShow bool     `json:"clientNoShow"`
}

type AppointmentResponse struct {
	AgentEmail string         `json:"agentEmail"`
	AgentName  string         `json:"agentName,omitempty"`
	PlanTier   string         `json:"planTier,omitempty"`
	StartTime  string         `json:"startTime"`
	EndTime    string         `json:"endTime"`
	Own        bool           `json:"own"`
	Parts      []PartResponse `json:"parts"`
}

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	Date                 string                `json:"date"`
	Blocked              bool                  `json:"blocked"`
	BlockReason          string                `json:"blockReason,omitempty"`
	OpenTime             string                `json:"openTime"`
	CloseTime            string                `json:"closeTime"`
	SlotMinutes          int                   `json:"slotMinutes"`
	SeatsPerSlot         int                   `json:"seatsPerSlot"`
	SeatsRestrictedPlans int                   `json:"seatsRestrictedPlans"`
	Slots                []SlotResponse        `json:"slots"`
	Appointments         []AppointmentResponse `json:"appointments"`
}

func FromUseCaseResponse(resp *getDaySchedule.Response) *DayScheduleResponse {
	out := &DayScheduleResponse{
		Date:                 resp.Date.Format(domain.DateFormat),
		Blocked:              resp.Blocked,
		BlockReason:          resp.BlockReason,
		OpenTime:             resp.Open.String(),
		CloseTime:            resp.Close.String(),
		SlotMinutes:          resp.SlotMinutes,
		SeatsPerSlot:         resp.SeatsPerSlot,
		SeatsRestrictedPlans: resp.SeatsRestrictedPlans,
		Slots:                make([]SlotResponse, 0, len(resp.Slots)),
		Appointments:         make([]AppointmentResponse, 0, len(resp.Appointments)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			Start:      s.Start.String(),
			End:        s.End.String(),
			Total:      s.Total,
			Restricted: s.Restricted,
			FreeSeats:  s.FreeSeats,
			Full:       s.Full,
		})
	}

	for _, a := range resp.Appointments {
		appt := AppointmentResponse{
			AgentEmail: a.AgentEmail,
			AgentName:  a.AgentName,
			PlanTier:   string(a.PlanTier),
			StartTime:  a.StartTime.String(),
			EndTime:    a.EndTime.String(),
			Own:        a.Own,
			Parts:      make([]PartResponse, 0, len(a.Parts)),
		}
		for _, p := range a.Parts {
			appt.Parts = append(appt.Parts, PartResponse{
				ID:           p.ID,
				StartTime:    p.StartTime.String(),
				EndTime:      p.EndTime.String(),
				ClientName:   p.ClientName,
				Price:        p.Price,
				Finalized:    p.Finalized,
				ClientNoShow: p.ClientNoShow,
			})
		}
		out.Appointments = append(out.Appointments, appt)
	}
	return out
}
