package list_agents

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/agents"
)

const (
	msgUnauthorized = "caller is not identified"
	msgForbidden    = "only admins may list the roster"
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

// Handle GET /api/v1/agents
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	list, err := h.service.List(r.Context(), caller)
	if err != nil {
		if errors.Is(err, agents.ErrAccessDenied) {
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /agents - Failed to list agents: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainAgents(list))
}
