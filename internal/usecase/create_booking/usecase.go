package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-StudioBookingService/internal/availability"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/events"
	dayblockRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/dayblock"
)

// UseCase books an interval on the studio floor
type UseCase struct {
	bookingRepo  BookingRepository
	agentRepo    AgentRepository
	blockRepo    DayBlockRepository
	policies     PolicyProvider
	txManager    TransactionManager
	publisher    EventPublisher
	recorder     DecisionRecorder
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	agentRepo AgentRepository,
	blockRepo DayBlockRepository,
	policies PolicyProvider,
	txManager TransactionManager,
	publisher EventPublisher,
	recorder DecisionRecorder,
	logger Logger,
) *UseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		agentRepo:    agentRepo,
		blockRepo:    blockRepo,
		policies:     policies,
		txManager:    txManager,
		publisher:    publisher,
		recorder:     recorder,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute decides and stores a booking.
// The date and the agent are locked before the snapshot is read, in the same
// read committed transaction as the insert: writers of a date run one at a
// time and each reads the bookings its predecessor committed, so two agents
// cannot both take the last seat.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	email := domain.NormalizeEmail(req.AgentEmail)
	uc.logger.Info("CreateBooking: agent=%s, date=%s, %s-%s",
		email, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, req.StartTime.On(req.Date, now.Location()), now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	policy, err := uc.policies.Policy(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}
	engine, err := availability.NewEngine(policy)
	if err != nil {
		uc.logger.Error("CreateBooking: stored policy is invalid: %v", err)
		return nil, fmt.Errorf("%w: invalid policy: %v", ErrInternal, err)
	}

	var (
		result   *domain.Booking
		decision availability.Decision
	)

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.LockDate(txCtx, req.Date); err != nil {
			uc.logger.Error("CreateBooking: failed to lock date: %v", err)
			return fmt.Errorf("%w: failed to lock date: %w", ErrInternal, err)
		}
		if err := uc.bookingRepo.LockAgent(txCtx, email); err != nil {
			uc.logger.Error("CreateBooking: failed to lock agent: %v", err)
			return fmt.Errorf("%w: failed to lock agent: %w", ErrInternal, err)
		}

		snapshot, agent, err := uc.loadSnapshot(txCtx, req, email)
		if err != nil {
			return err
		}

		decision, err = engine.CanBook(availability.Candidate{
			Date:       req.Date,
			Start:      req.StartTime,
			End:        req.EndTime,
			AgentEmail: email,
			PlanTier:   agent.PlanTier,
			ClientName: strings.TrimSpace(req.ClientName),
			Price:      req.Price,
		}, snapshot)
		if err != nil {
			uc.logger.Warn("CreateBooking: engine refused input: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if !decision.Accepted {
			uc.logger.Warn("CreateBooking: rejected for %s: %s", email, decision.Rejection.Code)
			return fmt.Errorf("%w: %w", ErrRejected, decision.Rejection)
		}

		if agent.HasMonthlyLimit() {
			from, to := monthRange(req.Date)
			count, err := uc.bookingRepo.CountByAgentInRange(txCtx, email, from, to)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to count monthly bookings: %v", err)
				return fmt.Errorf("%w: failed to count bookings: %w", ErrInternal, err)
			}
			if count >= agent.MonthlyBookingLimit {
				uc.logger.Warn("CreateBooking: %s used %d/%d bookings this month", email, count, agent.MonthlyBookingLimit)
				return ErrMonthlyLimitReached
			}
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			Date:       req.Date,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			AgentEmail: email,
			ClientName: strings.TrimSpace(req.ClientName),
			Price:      req.Price,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	uc.record(err)
	if err != nil {
		return nil, err
	}

	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.BookingCreated, result, email, now)); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	resp := &Response{
		ID:         result.ID,
		Date:       result.Date,
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
		AgentEmail: result.AgentEmail,
		ClientName: result.ClientName,
		Price:      result.Price,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}
	for _, sc := range decision.Slots {
		resp.Slots = append(resp.Slots, SlotCost{Start: sc.Start, End: sc.End, NewSeat: sc.NewSeat})
	}
	return resp, nil
}

// loadSnapshot reads everything the engine needs about req.Date
func (uc *UseCase) loadSnapshot(ctx context.Context, req *Request, email string) (availability.Snapshot, *domain.Agent, error) {
	agents, err := uc.agentRepo.List(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list agents: %v", err)
		return availability.Snapshot{}, nil, fmt.Errorf("%w: failed to list agents: %w", ErrInternal, err)
	}
	roster := domain.NewRoster(agents)
	agent, ok := roster.Lookup(email)
	if !ok {
		uc.logger.Warn("CreateBooking: %s is not on the roster", email)
		return availability.Snapshot{}, nil, ErrAgentNotFound
	}

	block, err := uc.blockRepo.GetByDate(ctx, req.Date)
	if err != nil && !errors.Is(err, dayblockRepo.ErrDayBlockNotFound) {
		uc.logger.Error("CreateBooking: failed to get day block: %v", err)
		return availability.Snapshot{}, nil, fmt.Errorf("%w: failed to get day block: %w", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
		return availability.Snapshot{}, nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	return availability.Snapshot{
		Date:     req.Date,
		Bookings: bookings,
		Roster:   roster,
		Blocks:   availability.NewBlocks(block),
	}, agent, nil
}

func (uc *UseCase) record(err error) {
	var rejection *availability.Rejection
	switch {
	case err == nil:
		uc.recorder.RecordDecision(resultAccepted, reasonNone)
	case errors.As(err, &rejection):
		uc.recorder.RecordDecision(resultRejected, string(rejection.Code))
	case errors.Is(err, ErrMonthlyLimitReached):
		uc.recorder.RecordDecision(resultRejected, reasonMonthlyLimit)
	}
}
