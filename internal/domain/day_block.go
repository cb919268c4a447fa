package domain

import "time"

// DayBlock makes a whole date unbookable
type DayBlock struct {
	ID        int64
	Date      time.Time
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}

// DisplayReason returns the stored reason or the default message
func (d *DayBlock) DisplayReason() string {
	if d.Reason == "" {
		return DefaultDayBlockReason
	}
	return d.Reason
}
