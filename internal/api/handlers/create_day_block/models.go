package create_day_block

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// CreateDayBlockRequest HTTP request model
type CreateDayBlockRequest struct {
	Date   string `json:"date"` // "2025-12-25"
	Reason string `json:"reason,omitempty"`
}

// DayBlockResponse HTTP response model
type DayBlockResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Reason    string `json:"reason"`
	CreatedBy string `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
}

func FromDomainDayBlock(b *domain.DayBlock) *DayBlockResponse {
	return &DayBlockResponse{
		ID:        b.ID,
		Date:      b.Date.Format(domain.DateFormat),
		Reason:    b.DisplayReason(),
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}
