package dayblock

import "errors"

var (
	ErrDayBlockNotFound = errors.New("dayblock.repository: day block not found")
	ErrDuplicateBlock   = errors.New("dayblock.repository: date already blocked")
	ErrBuildQuery       = errors.New("dayblock.repository: failed to build query")
	ErrExecQuery        = errors.New("dayblock.repository: failed to execute query")
	ErrScanRow          = errors.New("dayblock.repository: failed to scan row")
)
