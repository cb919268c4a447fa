package settings

import "errors"

var (
	// ErrSettingsNotFound is returned while the settings row has never been written
	ErrSettingsNotFound = errors.New("settings.repository: settings not found")

	ErrBuildQuery = errors.New("settings.repository: failed to build query")
	ErrExecQuery  = errors.New("settings.repository: failed to execute query")
	ErrScanRow    = errors.New("settings.repository: failed to scan row")
)
