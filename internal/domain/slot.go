package domain

import "github.com/m04kA/SMC-StudioBookingService/pkg/types"

// SlotOccupancy is the number of distinct agents working in one grid slot
type SlotOccupancy struct {
	Start      types.TimeString
	End        types.TimeString
	Total      int
	Restricted int
}

// FreeSeats returns the seats left for a non-restricted agent
func (s *SlotOccupancy) FreeSeats(seatsPerSlot int) int {
	if free := seatsPerSlot - s.Total; free > 0 {
		return free
	}
	return 0
}

// IsFull returns true if no seat is left
func (s *SlotOccupancy) IsFull(seatsPerSlot int) bool {
	return s.Total >= seatsPerSlot
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *SlotOccupancy) OccupancyRate(seatsPerSlot int) float64 {
	if seatsPerSlot == 0 {
		return 0
	}
	return float64(s.Total) / float64(seatsPerSlot) * 100
}
