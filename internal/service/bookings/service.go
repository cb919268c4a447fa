package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/availability"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/events"
	agentRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/agent"
	bookingRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/bookings/models"
)

// Service handles reads, deletion and outcomes of existing bookings
type Service struct {
	bookingRepo  BookingRepository
	agentRepo    AgentRepository
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

func NewService(
	bookingRepo BookingRepository,
	agentRepo AgentRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		agentRepo:    agentRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID returns a booking to its owner or an admin
func (s *Service) GetByID(ctx context.Context, id int64, caller domain.Caller) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for %s", id, caller.Email)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !caller.CanView(booking.AgentEmail) {
		s.logger.Warn("GetByID: access denied for %s to booking id=%d", caller.Email, id)
		return nil, ErrAccessDenied
	}

	agent, err := s.lookupAgent(ctx, booking.AgentEmail)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	appt := availability.Single(booking)
	return models.FromDomainBooking(booking,
		!booking.HasOutcome() && availability.CanDelete(appt, agent, now),
		availability.HasElapsed(appt, now),
	), nil
}

// ListAgentBookings returns an agent's bookings to the agent or an admin
func (s *Service) ListAgentBookings(ctx context.Context, req *models.ListAgentBookingsRequest, caller domain.Caller) (*models.BookingListResponse, error) {
	s.logger.Info("ListAgentBookings: fetching bookings of %s for %s (open=%t)", req.AgentEmail, caller.Email, req.OpenOnly)

	if req.AgentEmail == "" {
		return nil, fmt.Errorf("%w: agent email is required", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidInput)
	}
	if !caller.CanView(req.AgentEmail) {
		s.logger.Warn("ListAgentBookings: access denied for %s to %s", caller.Email, req.AgentEmail)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.GetByAgent(ctx, domain.AgentBookingsFilter{
		AgentEmail: req.AgentEmail,
		From:       req.From,
		To:         req.To,
		OpenOnly:   req.OpenOnly,
	})
	if err != nil {
		s.logger.Error("ListAgentBookings: repository error for %s: %v", req.AgentEmail, err)
		return nil, fmt.Errorf("%w: ListAgentBookings - repository error: %v", ErrInternal, err)
	}

	agent, err := s.lookupAgent(ctx, req.AgentEmail)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	resp := &models.BookingListResponse{Bookings: make([]models.BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		appt := availability.Single(b)
		resp.Bookings = append(resp.Bookings, *models.FromDomainBooking(b,
			!b.HasOutcome() && availability.CanDelete(appt, agent, now),
			availability.HasElapsed(appt, now),
		))
	}

	s.logger.Info("ListAgentBookings: fetched %d bookings of %s", len(resp.Bookings), req.AgentEmail)
	return resp, nil
}

// Delete removes one of the caller's own bookings while the notice window is open
func (s *Service) Delete(ctx context.Context, id int64, caller domain.Caller) error {
	s.logger.Info("Delete: deleting booking id=%d by %s", id, caller.Email)

	var deleted *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.loadOwned(txCtx, "Delete", id, caller)
		if err != nil {
			return err
		}
		if booking.HasOutcome() {
			s.logger.Warn("Delete: booking id=%d already has outcome %s", id, booking.Outcome())
			return ErrOutcomeAlreadySet
		}

		if err := s.checkDeletable(txCtx, availability.Single(booking)); err != nil {
			s.logger.Warn("Delete: booking id=%d: %v", id, err)
			return err
		}

		if err := s.bookingRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		deleted = booking
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.BookingDeleted, deleted, caller)
	s.logger.Info("Delete: booking id=%d deleted", id)
	return nil
}

// DeleteAppointment removes all of the caller's open bookings on date as one unit.
// The notice window is measured from the earliest of them.
func (s *Service) DeleteAppointment(ctx context.Context, date time.Time, caller domain.Caller) (int, error) {
	s.logger.Info("DeleteAppointment: deleting bookings of %s on %s", caller.Email, date.Format(domain.DateFormat))

	var deleted []*domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		onDate, err := s.bookingRepo.GetByDate(txCtx, date)
		if err != nil {
			s.logger.Error("DeleteAppointment: repository error: %v", err)
			return fmt.Errorf("%w: DeleteAppointment - repository error: %v", ErrInternal, err)
		}

		var own []*domain.Booking
		for _, b := range onDate {
			if b.IsOwnedBy(caller.Email) && !b.HasOutcome() {
				own = append(own, b)
			}
		}
		if len(own) == 0 {
			return ErrBookingNotFound
		}

		appts := availability.GroupByAgent(own)
		if err := s.checkDeletable(txCtx, appts[0]); err != nil {
			s.logger.Warn("DeleteAppointment: %v", err)
			return err
		}

		for _, b := range appts[0].Parts {
			if err := s.bookingRepo.Delete(txCtx, b.ID); err != nil {
				s.logger.Error("DeleteAppointment: repository error for booking id=%d: %v", b.ID, err)
				return fmt.Errorf("%w: DeleteAppointment - repository error: %v", ErrInternal, err)
			}
		}
		deleted = appts[0].Parts
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, b := range deleted {
		s.publish(ctx, events.BookingDeleted, b, caller)
	}
	s.logger.Info("DeleteAppointment: deleted %d bookings of %s", len(deleted), caller.Email)
	return len(deleted), nil
}

// Finalize records that the appointment took place
func (s *Service) Finalize(ctx context.Context, id int64, caller domain.Caller) (*models.BookingResponse, error) {
	return s.setOutcome(ctx, id, caller, domain.OutcomeFinalized)
}

// MarkNoShow records that the client did not show up
func (s *Service) MarkNoShow(ctx context.Context, id int64, caller domain.Caller) (*models.BookingResponse, error) {
	return s.setOutcome(ctx, id, caller, domain.OutcomeNoShow)
}

func (s *Service) setOutcome(ctx context.Context, id int64, caller domain.Caller, outcome domain.Outcome) (*models.BookingResponse, error) {
	s.logger.Info("SetOutcome: marking booking id=%d as %s by %s", id, outcome, caller.Email)

	var result *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.loadOwned(txCtx, "SetOutcome", id, caller)
		if err != nil {
			return err
		}
		if booking.HasOutcome() {
			s.logger.Warn("SetOutcome: booking id=%d already has outcome %s", id, booking.Outcome())
			return ErrOutcomeAlreadySet
		}

		now := s.timeProvider.Now()
		if !availability.HasElapsed(availability.Single(booking), now) {
			s.logger.Warn("SetOutcome: booking id=%d has not ended yet", id)
			return ErrNotElapsed
		}

		if err := s.bookingRepo.SetOutcome(txCtx, id, outcome, now); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("SetOutcome: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: SetOutcome - repository error: %v", ErrInternal, err)
		}

		booking.Finalized = outcome == domain.OutcomeFinalized
		booking.ClientNoShow = outcome == domain.OutcomeNoShow
		booking.FinalizedAt = &now
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.OutcomeEvent(outcome), result, caller)
	s.logger.Info("SetOutcome: booking id=%d marked as %s", id, outcome)
	return models.FromDomainBooking(result, false, true), nil
}

// loadOwned fetches a booking and checks that the caller owns it
func (s *Service) loadOwned(ctx context.Context, op string, id int64, caller domain.Caller) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	if !caller.Owns(booking.AgentEmail) {
		s.logger.Warn("%s: %s does not own booking id=%d", op, caller.Email, id)
		return nil, ErrAccessDenied
	}
	return booking, nil
}

func (s *Service) checkDeletable(ctx context.Context, appt availability.Appointment) error {
	agent, err := s.lookupAgent(ctx, appt.AgentEmail())
	if err != nil {
		return err
	}
	if !availability.CanDelete(appt, agent, s.timeProvider.Now()) {
		return fmt.Errorf("%w: less than %d hours before start", ErrDeletionWindowClosed, domain.DeletionNoticeHours)
	}
	return nil
}

// lookupAgent returns nil for agents no longer on the roster; they keep the notice rule
func (s *Service) lookupAgent(ctx context.Context, email string) (*domain.Agent, error) {
	agent, err := s.agentRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, agentRepo.ErrAgentNotFound) {
			return nil, nil
		}
		s.logger.Error("lookupAgent: repository error for %s: %v", email, err)
		return nil, fmt.Errorf("%w: failed to get agent: %v", ErrInternal, err)
	}
	return agent, nil
}

// publish is best effort; the booking change is already committed
func (s *Service) publish(ctx context.Context, key string, b *domain.Booking, caller domain.Caller) {
	if err := s.publisher.Publish(ctx, events.NewBookingEvent(key, b, caller.Email, s.timeProvider.Now())); err != nil {
		s.logger.Warn("publish: failed to publish %s for booking id=%d: %v", key, b.ID, err)
	}
}
