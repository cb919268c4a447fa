package agents

import "errors"

var (
	ErrAgentNotFound      = errors.New("agents: agent not found")
	ErrAgentAlreadyExists = errors.New("agents: agent already exists")
	ErrAccessDenied       = errors.New("agents: access denied")
	ErrInvalidInput       = errors.New("agents: invalid input data")
	ErrInternal           = errors.New("agents: internal error")
)
