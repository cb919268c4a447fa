package get_day_block

import "github.com/m04kA/SMC-StudioBookingService/internal/domain"

// DayBlockStatusResponse HTTP response model
type DayBlockStatusResponse struct {
	Date    string `json:"date"`
	Blocked bool   `json:"blocked"`
	Reason  string `json:"reason,omitempty"`
}

func FromDomainDayBlock(date string, b *domain.DayBlock) *DayBlockStatusResponse {
	if b == nil {
		return &DayBlockStatusResponse{Date: date}
	}
	return &DayBlockStatusResponse{Date: date, Blocked: true, Reason: b.DisplayReason()}
}
