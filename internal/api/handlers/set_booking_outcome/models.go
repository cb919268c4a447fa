package set_booking_outcome

import "github.com/m04kA/SMC-StudioBookingService/internal/domain"

// SetOutcomeRequest HTTP request model
type SetOutcomeRequest struct {
	Outcome string `json:"outcome"` // "finalized" | "no_show"
}

func (r *SetOutcomeRequest) ToDomain() (domain.Outcome, bool) {
	switch o := domain.Outcome(r.Outcome); o {
	case domain.OutcomeFinalized, domain.OutcomeNoShow:
		return o, true
	}
	return "", false
}
