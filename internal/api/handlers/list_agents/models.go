package list_agents

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

type AgentResponse struct {
	ID                  int64  `json:"id"`
	Email               string `json:"email"`
	Name                string `json:"name"`
	PlanTier            string `json:"planTier"`
	MonthlyBookingLimit int    `json:"monthlyBookingLimit"`
	CreatedAt           string `json:"createdAt"`
}

// AgentListResponse HTTP response model
type AgentListResponse struct {
	Agents []AgentResponse `json:"agents"`
}

func FromDomainAgents(list []*domain.Agent) *AgentListResponse {
	out := &AgentListResponse{Agents: make([]AgentResponse, 0, len(list))}
	for _, a := range list {
		out.Agents = append(out.Agents, AgentResponse{
			ID:                  a.ID,
			Email:               a.Email,
			Name:                a.Name,
			PlanTier:            string(a.PlanTier),
			MonthlyBookingLimit: a.MonthlyBookingLimit,
			CreatedAt:           a.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
