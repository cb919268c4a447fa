package delete_agent

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/agents"
)

const (
	msgUnauthorized = "caller is not identified"
	msgForbidden    = "only admins may manage the roster"
	msgNotFound     = "agent not found"
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

// Handle DELETE /api/v1/agents/{email}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), caller, email); err != nil {
		switch {
		case errors.Is(err, agents.ErrAccessDenied):
			h.logger.Warn("DELETE /agents/{email} - Access denied: caller=%s", caller.Email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, agents.ErrAgentNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, agents.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("DELETE /agents/{email} - Failed to delete agent: email=%s, error=%v", email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /agents/{email} - Agent removed: email=%s", email)
	handlers.RespondNoContent(w)
}
