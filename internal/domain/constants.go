package domain

// Default studio settings
const (
	DefaultSeatsPerSlot         = 4
	DefaultSeatsRestrictedPlans = 1
	DefaultOpenTime             = "07:00"
	DefaultCloseTime            = "23:00"
	DefaultSlotMinutes          = 60
	DefaultDayBlockReason       = "date unavailable"
)

// Business validation constants
const (
	DeletionNoticeHours = 24
	MinSeatsPerSlot     = 1
	MaxSeatsPerSlot     = 100
	MinSlotMinutes      = 5
	MaxSlotMinutes      = 240
	MaxClientNameLength = 200
	MaxReasonLength     = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
