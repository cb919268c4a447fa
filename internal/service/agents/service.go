package agents

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	agentRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/agent"
)

// CreateAgentRequest adds an agent to the roster
type CreateAgentRequest struct {
	Email               string
	Name                string
	PlanTier            domain.PlanTier
	MonthlyBookingLimit int
}

// Service manages the roster. Every write is admin only.
type Service struct {
	agentRepo AgentRepository
	logger    Logger
}

func NewService(agentRepo AgentRepository, logger Logger) *Service {
	return &Service{agentRepo: agentRepo, logger: logger}
}

func (s *Service) Create(ctx context.Context, caller domain.Caller, req *CreateAgentRequest) (*domain.Agent, error) {
	s.logger.Info("Create: adding agent %s (plan=%s) by %s", req.Email, req.PlanTier, caller.Email)

	if !caller.IsAdmin {
		s.logger.Warn("Create: %s is not an admin", caller.Email)
		return nil, ErrAccessDenied
	}
	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.agentRepo.Create(ctx, &domain.Agent{
		Email:               domain.NormalizeEmail(req.Email),
		Name:                strings.TrimSpace(req.Name),
		PlanTier:            domain.PlanTier(strings.TrimSpace(string(req.PlanTier))),
		MonthlyBookingLimit: req.MonthlyBookingLimit,
	})
	if err != nil {
		if errors.Is(err, agentRepo.ErrDuplicateAgent) {
			s.logger.Warn("Create: agent %s already exists", req.Email)
			return nil, ErrAgentAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: agent id=%d added", created.ID)
	return created, nil
}

// Get returns one agent. Admins may read any agent, agents only themselves.
func (s *Service) Get(ctx context.Context, caller domain.Caller, email string) (*domain.Agent, error) {
	if !caller.CanView(email) {
		return nil, ErrAccessDenied
	}
	agent, err := s.agentRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, agentRepo.ErrAgentNotFound) {
			return nil, ErrAgentNotFound
		}
		s.logger.Error("Get: repository error for %s: %v", email, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return agent, nil
}

func (s *Service) List(ctx context.Context, caller domain.Caller) ([]*domain.Agent, error) {
	if !caller.IsAdmin {
		s.logger.Warn("List: %s is not an admin", caller.Email)
		return nil, ErrAccessDenied
	}

	agents, err := s.agentRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d agents", len(agents))
	return agents, nil
}

func (s *Service) Delete(ctx context.Context, caller domain.Caller, email string) error {
	s.logger.Info("Delete: removing agent %s by %s", email, caller.Email)

	if !caller.IsAdmin {
		s.logger.Warn("Delete: %s is not an admin", caller.Email)
		return ErrAccessDenied
	}

	if err := s.agentRepo.Delete(ctx, email); err != nil {
		if errors.Is(err, agentRepo.ErrAgentNotFound) {
			return ErrAgentNotFound
		}
		s.logger.Error("Delete: repository error for %s: %v", email, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: agent %s removed", email)
	return nil
}

func validateCreate(req *CreateAgentRequest) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrInvalidInput, req.Email)
	}
	if strings.TrimSpace(string(req.PlanTier)) == "" {
		return fmt.Errorf("%w: planTier is required", ErrInvalidInput)
	}
	if req.MonthlyBookingLimit < 0 {
		return fmt.Errorf("%w: monthlyBookingLimit must be >= 0", ErrInvalidInput)
	}
	return nil
}
