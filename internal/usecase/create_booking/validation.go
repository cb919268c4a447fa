package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// validateRequest checks the request shape; the grid is checked by the engine
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if strings.TrimSpace(req.AgentEmail) == "" {
		return fmt.Errorf("%w: agent email is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}
	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: client name exceeds %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}

// validateDate rejects bookings that start before now
func validateDate(date time.Time, start time.Time, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}
	if start.Before(now) {
		return fmt.Errorf("%w: start time has already passed", ErrInvalidDate)
	}
	return nil
}

// monthRange returns the first and last calendar day of date's month
func monthRange(date time.Time) (time.Time, time.Time) {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	return first, first.AddDate(0, 1, -1)
}
