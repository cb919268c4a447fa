package dayblocks

import "errors"

var (
	ErrDayBlockNotFound = errors.New("dayblocks: day block not found")
	ErrAlreadyBlocked   = errors.New("dayblocks: date already blocked")
	ErrAccessDenied     = errors.New("dayblocks: access denied")
	ErrInvalidInput     = errors.New("dayblocks: invalid input data")
	ErrInternal         = errors.New("dayblocks: internal error")
)
