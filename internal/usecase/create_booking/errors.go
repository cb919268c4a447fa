package create_booking

import "errors"

var (
	// ErrInvalidInput is returned for malformed requests
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate is returned when the booking starts in the past
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrAgentNotFound is returned when the caller is not on the roster
	ErrAgentNotFound = errors.New("create_booking: agent not found")

	// ErrMonthlyLimitReached is returned when the agent used up the monthly allowance
	ErrMonthlyLimitReached = errors.New("create_booking: monthly booking limit reached")

	// ErrRejected wraps the *availability.Rejection explaining why the slot was refused
	ErrRejected = errors.New("create_booking: booking rejected")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("create_booking: internal error")
)
