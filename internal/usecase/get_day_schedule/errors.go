package get_day_schedule

import "errors"

var (
	// ErrInvalidInput is returned for malformed requests
	ErrInvalidInput = errors.New("get_day_schedule: invalid input data")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("get_day_schedule: internal error")
)
