package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-StudioBookingService/internal/api"
	createAgentHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/create_agent"
	createBookingHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/create_booking"
	createDayBlockHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/create_day_block"
	deleteAgentHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/delete_agent"
	deleteAppointmentHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/delete_appointment"
	deleteBookingHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/delete_booking"
	deleteDayBlockHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/delete_day_block"
	getAgentBookingsHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_agent_bookings"
	getBookingHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_booking"
	getDayBlockHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_day_block"
	getDayScheduleHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_day_schedule"
	getSettingsHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_settings"
	listAgentsHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/list_agents"
	listDayBlocksHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/list_day_blocks"
	setBookingOutcomeHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/set_booking_outcome"
	updateSettingsHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/config"
	"github.com/m04kA/SMC-StudioBookingService/internal/events"
	agentRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/agent"
	bookingRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/booking"
	dayBlockRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/dayblock"
	settingsRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-StudioBookingService/internal/migrate"
	agentsService "github.com/m04kA/SMC-StudioBookingService/internal/service/agents"
	bookingsService "github.com/m04kA/SMC-StudioBookingService/internal/service/bookings"
	dayBlocksService "github.com/m04kA/SMC-StudioBookingService/internal/service/dayblocks"
	settingsService "github.com/m04kA/SMC-StudioBookingService/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-StudioBookingService/internal/usecase/create_booking"
	getDayScheduleUC "github.com/m04kA/SMC-StudioBookingService/internal/usecase/get_day_schedule"
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/logger"
	"github.com/m04kA/SMC-StudioBookingService/pkg/metrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/mq"
	"github.com/m04kA/SMC-StudioBookingService/pkg/txmanager"
)

// eventSender is satisfied by *mq.Publisher and mq.NopPublisher
type eventSender interface {
	events.Sender
	Close() error
}

func newServeCmd(configPath *string) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return serve(ctx, cfg, log, migrateUp)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "run database migrations on startup")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger, migrateUp bool) error {
	log.Info("Starting studio booking service %s (tz=%s)", Version, cfg.Studio.Timezone)

	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if migrateUp {
		applied, err := migrate.Up(ctx, db, log)
		if err != nil {
			return err
		}
		log.Info("Migrations applied: %d", applied)
	}

	var (
		metricsCollector *metrics.Metrics
		executor         interface {
			dbmetrics.DBExecutor
			dbmetrics.TxBeginner
		}
		recorder createBookingUC.DecisionRecorder
	)
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		recorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		executor = dbmetrics.NewPlain(db)
	}

	var sender eventSender = mq.NopPublisher{}
	if cfg.Events.Enabled {
		p, err := mq.NewPublisher(mq.Config{
			URL:      cfg.Events.URL,
			Exchange: cfg.Events.Exchange,
			AppID:    cfg.Metrics.ServiceName,
		})
		if err != nil {
			return err
		}
		sender = p
		log.Info("Publishing booking events to exchange %s", cfg.Events.Exchange)
	}
	defer sender.Close()
	publisher := events.NewPublisher(sender)

	bookingRepository := bookingRepo.NewRepository(executor)
	agentRepository := agentRepo.NewRepository(executor)
	dayBlockRepository := dayBlockRepo.NewRepository(executor)
	settingsRepository := settingsRepo.NewRepository(executor)
	txMgr := txmanager.NewTransactionManager(executor)

	settingsSvc := settingsService.NewService(settingsRepository, cfg.StudioSettings(), log)
	agentsSvc := agentsService.NewService(agentRepository, log)
	dayBlocksSvc := dayBlocksService.NewService(dayBlockRepository, log)
	bookingsSvc := bookingsService.NewService(bookingRepository, agentRepository, txMgr, publisher, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		agentRepository,
		dayBlockRepository,
		settingsSvc,
		txMgr,
		publisher,
		recorder,
		log,
	)
	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(
		bookingRepository,
		agentRepository,
		dayBlockRepository,
		settingsSvc,
		txMgr,
		log,
	)

	router := api.NewRouter(api.RouterConfig{
		Identity:    middleware.NewIdentity(cfg.Admin.Emails),
		Logger:      log,
		Metrics:     metricsCollector,
		MetricsPath: cfg.Metrics.Path,
	}, api.Handlers{
		GetDaySchedule: getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log),
		GetSettings:    getSettingsHandler.NewHandler(settingsSvc, log),
		GetDayBlock:    getDayBlockHandler.NewHandler(dayBlocksSvc, log),

		CreateBooking:     createBookingHandler.NewHandler(createBookingUseCase, log),
		GetBooking:        getBookingHandler.NewHandler(bookingsSvc, log),
		DeleteBooking:     deleteBookingHandler.NewHandler(bookingsSvc, log),
		SetBookingOutcome: setBookingOutcomeHandler.NewHandler(bookingsSvc, log),
		GetAgentBookings:  getAgentBookingsHandler.NewHandler(bookingsSvc, log),
		DeleteAppointment: deleteAppointmentHandler.NewHandler(bookingsSvc, log),

		CreateAgent:    createAgentHandler.NewHandler(agentsSvc, log),
		ListAgents:     listAgentsHandler.NewHandler(agentsSvc, log),
		DeleteAgent:    deleteAgentHandler.NewHandler(agentsSvc, log),
		CreateDayBlock: createDayBlockHandler.NewHandler(dayBlocksSvc, log),
		ListDayBlocks:  listDayBlocksHandler.NewHandler(dayBlocksSvc, log),
		DeleteDayBlock: deleteDayBlockHandler.NewHandler(dayBlocksSvc, log),
		UpdateSettings: updateSettingsHandler.NewHandler(settingsSvc, log),
	})

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		return err
	}

	log.Info("Server stopped gracefully")
	return nil
}
