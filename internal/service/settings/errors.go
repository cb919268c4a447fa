package settings

import "errors"

var (
	// ErrAccessDenied is returned when a non-admin tries to change settings
	ErrAccessDenied = errors.New("settings: access denied")

	// ErrInvalidInput is returned when the resulting settings are not a valid policy
	ErrInvalidInput = errors.New("settings: invalid input data")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("settings: internal error")
)
