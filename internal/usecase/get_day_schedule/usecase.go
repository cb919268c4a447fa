package get_day_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBookingService/internal/availability"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	dayblockRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/dayblock"
	"github.com/m04kA/SMC-StudioBookingService/pkg/ptr"
)

// UseCase builds the day view: occupancy per slot and appointments per agent
type UseCase struct {
	bookingRepo BookingRepository
	agentRepo   AgentRepository
	blockRepo   DayBlockRepository
	policies    PolicyProvider
	txManager   TransactionManager
	logger      Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	agentRepo AgentRepository,
	blockRepo DayBlockRepository,
	policies PolicyProvider,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		agentRepo:   agentRepo,
		blockRepo:   blockRepo,
		policies:    policies,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	uc.logger.Info("GetDaySchedule: date=%s", req.Date.Format(domain.DateFormat))

	policy, err := uc.policies.Policy(ctx)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}
	engine, err := availability.NewEngine(policy)
	if err != nil {
		uc.logger.Error("GetDaySchedule: stored policy is invalid: %v", err)
		return nil, fmt.Errorf("%w: invalid policy: %v", ErrInternal, err)
	}

	var (
		bookings []*domain.Booking
		agents   []*domain.Agent
		block    *domain.DayBlock
	)
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		if bookings, err = uc.bookingRepo.GetByDate(txCtx, req.Date); err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
		if agents, err = uc.agentRepo.List(txCtx); err != nil {
			return fmt.Errorf("%w: failed to list agents: %v", ErrInternal, err)
		}
		block, err = uc.blockRepo.GetByDate(txCtx, req.Date)
		if err != nil && !errors.Is(err, dayblockRepo.ErrDayBlockNotFound) {
			return fmt.Errorf("%w: failed to get day block: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("GetDaySchedule: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	roster := domain.NewRoster(agents)
	snapshot := availability.Snapshot{
		Date:     req.Date,
		Bookings: bookings,
		Roster:   roster,
		Blocks:   availability.NewBlocks(block),
	}

	resp := &Response{
		Date:                 req.Date,
		Open:                 policy.Grid.Open,
		Close:                policy.Grid.Close,
		SlotMinutes:          policy.Grid.SlotMinutes,
		SeatsPerSlot:         policy.Capacity.SeatsPerSlot,
		SeatsRestrictedPlans: policy.Capacity.SeatsRestrictedPlans,
	}
	if block != nil {
		resp.Blocked = true
		resp.BlockReason = block.DisplayReason()
	}

	for _, occ := range engine.ComputeOccupancy(req.Date, snapshot) {
		resp.Slots = append(resp.Slots, Slot{
			Start:      occ.Start,
			End:        occ.End,
			Total:      occ.Total,
			Restricted: occ.Restricted,
			FreeSeats:  occ.FreeSeats(policy.Capacity.SeatsPerSlot),
			Full:       occ.IsFull(policy.Capacity.SeatsPerSlot),
		})
	}

	for _, appt := range availability.GroupByAgent(bookings) {
		resp.Appointments = append(resp.Appointments, toAppointment(appt, roster, req.Caller))
	}

	uc.logger.Info("GetDaySchedule: %d bookings in %d appointments on %s",
		len(bookings), len(resp.Appointments), req.Date.Format(domain.DateFormat))
	return resp, nil
}

func toAppointment(appt availability.Appointment, roster domain.Roster, caller *domain.Caller) Appointment {
	email := appt.AgentEmail()
	_, start, _ := appt.Start()
	_, end, _ := appt.End()

	out := Appointment{
		AgentEmail: email,
		StartTime:  start,
		EndTime:    end,
		Own:        caller != nil && caller.Owns(email),
	}
	if agent, ok := roster.Lookup(email); ok {
		out.AgentName = agent.Name
		out.PlanTier = agent.PlanTier
	}

	for _, b := range appt.Parts {
		part := Part{
			ID:           b.ID,
			StartTime:    b.StartTime,
			EndTime:      b.EndTime,
			Finalized:    b.Finalized,
			ClientNoShow: b.ClientNoShow,
		}
		if out.Own {
			part.ClientName = ptr.Ptr(b.ClientName)
			part.Price = ptr.Ptr(b.Price)
		}
		out.Parts = append(out.Parts, part)
	}
	return out
}
