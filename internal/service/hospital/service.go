package hospital

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/dravail-api/internal/model"
	"github.com/jwalitptl/dravail-api/internal/repository"
	"github.com/jwalitptl/dravail-api/internal/service/listing"
	"github.com/jwalitptl/dravail-api/pkg/errors"
	"github.com/jwalitptl/dravail-api/pkg/validator"
)

type Service struct {
	repo      repository.HospitalRepository
	workflow  *listing.Service
	validator *validator.Validator
}

func NewService(repo repository.HospitalRepository, workflow *listing.Service, v *validator.Validator) *Service {
	return &Service{repo: repo, workflow: workflow, validator: v}
}

func (s *Service) prepare(h *model.Hospital) error {
	if problems := s.validator.Validate(h); len(problems) > 0 {
		return errors.Validation("invalid hospital listing", problems)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, actor model.Actor, h *model.Hospital) (*model.Hospital, error) {
	if err := s.prepare(h); err != nil {
		return nil, err
	}
	if err := s.workflow.Create(ctx, actor, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) Get(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Hospital, error) {
	l, err := s.workflow.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	h, ok := l.(*model.Hospital)
	if !ok {
		return nil, errors.Internal(fmt.Errorf("unexpected listing type %T", l))
	}
	return h, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, actor model.Actor, h *model.Hospital) (*model.Hospital, error) {
	if err := s.prepare(h); err != nil {
		return nil, err
	}
	if err := s.workflow.SubmitEdit(ctx, id, actor, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) Decide(ctx context.Context, id uuid.UUID, actor model.Actor, approve bool, reason string) (*model.Decision, error) {
	return s.workflow.Decide(ctx, id, actor, approve, reason)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor model.Actor, version int) error {
	return s.workflow.Delete(ctx, id, actor, version)
}

func (s *Service) List(ctx context.Context, actor model.Actor, filter model.ListingFilter) ([]*model.Hospital, int, model.ListingFilter, error) {
	f := s.workflow.ScopeFilter(actor, filter)
	hospitals, total, err := s.repo.List(ctx, &f)
	if err != nil {
		return nil, 0, f, errors.Internal(fmt.Errorf("failed to list hospitals: %w", err))
	}
	return hospitals, total, f, nil
}

func (s *Service) Pending(ctx context.Context, actor model.Actor, page model.Pagination) ([]*model.Hospital, int, model.ListingFilter, error) {
	if err := s.workflow.RequireAdmin(actor, "review hospitals"); err != nil {
		return nil, 0, model.ListingFilter{}, err
	}
	return s.List(ctx, actor, model.ListingFilter{Pagination: page, Status: string(model.ListingPending)})
}

func (s *Service) Mine(ctx context.Context, actor model.Actor) ([]*model.Hospital, error) {
	if !actor.IsAuthenticated() {
		return nil, errors.Unauthorized(nil)
	}
	hospitals, err := s.repo.GetByOwner(ctx, actor.ID)
	if err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to load own hospitals: %w", err))
	}
	return hospitals, nil
}
