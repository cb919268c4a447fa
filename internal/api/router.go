package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/pkg/metrics"
)

// Handler is implemented by every endpoint package
type Handler interface {
	Handle(w http.ResponseWriter, r *http.Request)
}

// Handlers lists the endpoints mounted by NewRouter
type Handlers struct {
	GetDaySchedule Handler
	GetSettings    Handler
	GetDayBlock    Handler

	CreateBooking     Handler
	GetBooking        Handler
	DeleteBooking     Handler
	SetBookingOutcome Handler
	GetAgentBookings  Handler
	DeleteAppointment Handler

	CreateAgent    Handler
	ListAgents     Handler
	DeleteAgent    Handler
	CreateDayBlock Handler
	ListDayBlocks  Handler
	DeleteDayBlock Handler
	UpdateSettings Handler
}

type RouterConfig struct {
	Identity    *middleware.Identity
	Logger      middleware.Logger
	Metrics     *metrics.Metrics // nil disables /metrics and HTTP metrics
	MetricsPath string
}

func NewRouter(cfg RouterConfig, h Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	if cfg.Logger != nil {
		r.Use(middleware.Logging(cfg.Logger))
	}

	if cfg.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(cfg.Metrics))
		r.Handle(cfg.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public; a caller header, when present, unlocks own client details
	public := api.PathPrefix("").Subrouter()
	public.Use(cfg.Identity.Identify)
	public.HandleFunc("/schedule/{date}", h.GetDaySchedule.Handle).Methods(http.MethodGet)
	public.HandleFunc("/settings", h.GetSettings.Handle).Methods(http.MethodGet)
	public.HandleFunc("/day-blocks/{date}", h.GetDayBlock.Handle).Methods(http.MethodGet)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(cfg.Identity.Auth)

	protected.HandleFunc("/bookings", h.CreateBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", h.GetBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", h.DeleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/outcome", h.SetBookingOutcome.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/agents/{email}/bookings", h.GetAgentBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{date}", h.DeleteAppointment.Handle).Methods(http.MethodDelete)

	// Admin only; the services check the caller's role
	protected.HandleFunc("/agents", h.CreateAgent.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/agents", h.ListAgents.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/agents/{email}", h.DeleteAgent.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/day-blocks", h.CreateDayBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/day-blocks", h.ListDayBlocks.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/day-blocks/{date}", h.DeleteDayBlock.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/settings", h.UpdateSettings.Handle).Methods(http.MethodPut)

	return r
}
