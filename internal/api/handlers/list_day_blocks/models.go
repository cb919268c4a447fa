package list_day_blocks

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

type DayBlockResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Reason    string `json:"reason"`
	CreatedBy string `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
}

// DayBlockListResponse HTTP response model
type DayBlockListResponse struct {
	DayBlocks []DayBlockResponse `json:"dayBlocks"`
}

func FromDomainDayBlocks(list []*domain.DayBlock) *DayBlockListResponse {
	out := &DayBlockListResponse{DayBlocks: make([]DayBlockResponse, 0, len(list))}
	for _, b := range list {
		out.DayBlocks = append(out.DayBlocks, DayBlockResponse{
			ID:        b.ID,
			Date:      b.Date.Format(domain.DateFormat),
			Reason:    b.DisplayReason(),
			CreatedBy: b.CreatedBy,
			CreatedAt: b.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
