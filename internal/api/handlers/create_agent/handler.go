package create_agent

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/agents"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgUnauthorized       = "caller is not identified"
	msgForbidden          = "only admins may manage the roster"
	msgAlreadyExists      = "agent already exists"
)

type Handler struct {
	service AgentService
	logger  Logger
}

func NewHandler(service AgentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/agents
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateAgentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /agents - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	agent, err := h.service.Create(r.Context(), caller, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, agents.ErrAccessDenied):
			h.logger.Warn("POST /agents - Access denied: caller=%s", caller.Email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, agents.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, agents.ErrAgentAlreadyExists):
			handlers.RespondConflict(w, msgAlreadyExists)

		default:
			h.logger.Error("POST /agents - Failed to create agent: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /agents - Agent created: email=%s, plan=%s", agent.Email, agent.PlanTier)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainAgent(agent))
}
