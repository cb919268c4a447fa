package agent

import "errors"

var (
	// ErrAgentNotFound is returned when no agent has the email
	ErrAgentNotFound = errors.New("agent.repository: agent not found")

	// ErrDuplicateAgent is returned when the email is already on the roster
	ErrDuplicateAgent = errors.New("agent.repository: agent already exists")

	ErrBuildQuery = errors.New("agent.repository: failed to build query")
	ErrExecQuery  = errors.New("agent.repository: failed to execute query")
	ErrScanRow    = errors.New("agent.repository: failed to scan row")
)
