package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAccessDenied is returned when the caller does not own the booking
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrDeletionWindowClosed is returned when less than the notice period remains
	ErrDeletionWindowClosed = errors.New("bookings: deletion window closed")

	// ErrNotElapsed is returned when an outcome is recorded before the booking ended
	ErrNotElapsed = errors.New("bookings: booking has not ended yet")

	// ErrOutcomeAlreadySet is returned when the booking is already finalized or no-show
	ErrOutcomeAlreadySet = errors.New("bookings: outcome already recorded")

	// ErrInvalidInput is returned for malformed requests
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("bookings: internal error")
)
