package create_agent

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/agents"
)

// CreateAgentRequest HTTP request model
type CreateAgentRequest struct {
	Email               string `json:"email"`
	Name                string `json:"name"`
	PlanTier            string `json:"planTier"`
	MonthlyBookingLimit int    `json:"monthlyBookingLimit"` // 0 = unlimited
}

// AgentResponse HTTP response model
type AgentResponse struct {
	ID                  int64  `json:"id"`
	Email               string `json:"email"`
	Name                string `json:"name"`
	PlanTier            string `json:"planTier"`
	MonthlyBookingLimit int    `json:"monthlyBookingLimit"`
	CreatedAt           string `json:"createdAt"`
}

func (r *CreateAgentRequest) ToServiceRequest() *agents.CreateAgentRequest {
	return &agents.CreateAgentRequest{
		Email:               r.Email,
		Name:                r.Name,
		PlanTier:            domain.PlanTier(r.PlanTier),
		MonthlyBookingLimit: r.MonthlyBookingLimit,
	}
}

func FromDomainAgent(a *domain.Agent) *AgentResponse {
	return &AgentResponse{
		ID:                  a.ID,
		Email:               a.Email,
		Name:                a.Name,
		PlanTier:            string(a.PlanTier),
		MonthlyBookingLimit: a.MonthlyBookingLimit,
		CreatedAt:           a.CreatedAt.Format(time.RFC3339),
	}
}
