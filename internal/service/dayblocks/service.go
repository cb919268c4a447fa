package dayblocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	dayblockRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/dayblock"
)

// Service manages administrative day blocks
type Service struct {
	blockRepo DayBlockRepository
	logger    Logger
}

func NewService(blockRepo DayBlockRepository, logger Logger) *Service {
	return &Service{blockRepo: blockRepo, logger: logger}
}

// Create blocks a whole date. An empty reason shows as the default message.
func (s *Service) Create(ctx context.Context, caller domain.Caller, date time.Time, reason string) (*domain.DayBlock, error) {
	s.logger.Info("Create: blocking %s by %s", date.Format(domain.DateFormat), caller.Email)

	if !caller.IsAdmin {
		s.logger.Warn("Create: %s is not an admin", caller.Email)
		return nil, ErrAccessDenied
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	reason = strings.TrimSpace(reason)
	if len(reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	created, err := s.blockRepo.Create(ctx, &domain.DayBlock{
		Date:      date,
		Reason:    reason,
		CreatedBy: domain.NormalizeEmail(caller.Email),
	})
	if err != nil {
		if errors.Is(err, dayblockRepo.ErrDuplicateBlock) {
			return nil, ErrAlreadyBlocked
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: %s blocked (id=%d)", date.Format(domain.DateFormat), created.ID)
	return created, nil
}

// GetByDate is public; it returns ErrDayBlockNotFound when the date is open
func (s *Service) GetByDate(ctx context.Context, date time.Time) (*domain.DayBlock, error) {
	block, err := s.blockRepo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, dayblockRepo.ErrDayBlockNotFound) {
			return nil, ErrDayBlockNotFound
		}
		s.logger.Error("GetByDate: repository error for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetByDate - repository error: %v", ErrInternal, err)
	}
	return block, nil
}

func (s *Service) List(ctx context.Context, caller domain.Caller, from, to *time.Time) ([]*domain.DayBlock, error) {
	if !caller.IsAdmin {
		return nil, ErrAccessDenied
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidInput)
	}

	blocks, err := s.blockRepo.List(ctx, from, to)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return blocks, nil
}

func (s *Service) Delete(ctx context.Context, caller domain.Caller, date time.Time) error {
	s.logger.Info("Delete: unblocking %s by %s", date.Format(domain.DateFormat), caller.Email)

	if !caller.IsAdmin {
		return ErrAccessDenied
	}

	if err := s.blockRepo.Delete(ctx, date); err != nil {
		if errors.Is(err, dayblockRepo.ErrDayBlockNotFound) {
			return ErrDayBlockNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	return nil
}
