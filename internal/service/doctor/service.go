package doctor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/dravail-api/internal/availability"
	"github.com/jwalitptl/dravail-api/internal/model"
	"github.com/jwalitptl/dravail-api/internal/repository"
	"github.com/jwalitptl/dravail-api/internal/service/listing"
	"github.com/jwalitptl/dravail-api/pkg/errors"
	"github.com/jwalitptl/dravail-api/pkg/metrics"
	"github.com/jwalitptl/dravail-api/pkg/validator"
)

type Service struct {
	repo      repository.DoctorRepository
	workflow  *listing.Service
	validator *validator.Validator
	metrics   *metrics.Metrics
}

func NewService(repo repository.DoctorRepository, workflow *listing.Service, v *validator.Validator, m *metrics.Metrics) *Service {
	return &Service{
		repo:      repo,
		workflow:  workflow,
		validator: v,
		metrics:   m,
	}
}

// prepare validates the doctor's fields and availability and labels the
// availability rows from the registration number.
func (s *Service) prepare(d *model.Doctor) error {
	problems := s.validator.Validate(d)

	if d.CommonAvailability == nil {
		problems = append(problems, validator.FieldError{
			Field:   "common_availability",
			Tag:     "required",
			Message: "common_availability is required",
		})
	} else {
		problems = append(problems, s.schedule(d, d.CommonAvailability, model.AvailabilityCommon, "common_availability")...)
	}

	if d.CurrentAvailability != nil {
		problems = append(problems, s.schedule(d, d.CurrentAvailability, model.AvailabilityCurrent, "current_availability")...)
	}

	if len(problems) > 0 {
		return errors.Validation("invalid doctor listing", problems)
	}
	return nil
}

func (s *Service) schedule(d *model.Doctor, a *model.Availability, kind model.AvailabilityKind, field string) []validator.FieldError {
	a.Kind = kind
	a.AvailabilityType = availability.TypeLabel(d.RegNumber, kind)
	if a.HospitalID == nil {
		a.HospitalID = d.HospitalID
	}
	if a.ContactPreference != "" && !a.ContactPreference.IsValid() {
		return []validator.FieldError{{
			Field:   field + ".contact_preference",
			Tag:     "contactpref",
			Message: "contact_preference is not a known contact preference",
		}}
	}

	errs := availability.ValidateSchedule(a)
	out := make([]validator.FieldError, 0, len(errs))
	for _, e := range errs {
		s.metrics.ValidationFailures.WithLabelValues(string(e.Code)).Inc()
		out = append(out, validator.FieldError{
			Field:   field,
			Tag:     string(e.Code),
			Message: e.Message,
		})
	}
	return out
}

func (s *Service) Create(ctx context.Context, actor model.Actor, d *model.Doctor) (*model.Doctor, error) {
	if err := s.prepare(d); err != nil {
		return nil, err
	}
	if err := s.workflow.Create(ctx, actor, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Doctor, error) {
	l, err := s.workflow.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	d, ok := l.(*model.Doctor)
	if !ok {
		return nil, errors.Internal(fmt.Errorf("unexpected listing type %T", l))
	}
	return d, nil
}

// Update submits an edit. d.Version must be the version the editor read.
func (s *Service) Update(ctx context.Context, id uuid.UUID, actor model.Actor, d *model.Doctor) (*model.Doctor, error) {
	if err := s.prepare(d); err != nil {
		return nil, err
	}
	if err := s.workflow.SubmitEdit(ctx, id, actor, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Decide(ctx context.Context, id uuid.UUID, actor model.Actor, approve bool, reason string) (*model.Decision, error) {
	return s.workflow.Decide(ctx, id, actor, approve, reason)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor model.Actor, version int) error {
	return s.workflow.Delete(ctx, id, actor, version)
}

// List browses doctors visible to actor.
func (s *Service) List(ctx context.Context, actor model.Actor, filter model.ListingFilter) ([]*model.Doctor, int, model.ListingFilter, error) {
	f := s.workflow.ScopeFilter(actor, filter)
	doctors, total, err := s.repo.List(ctx, &f)
	if err != nil {
		return nil, 0, f, errors.Internal(fmt.Errorf("failed to list doctors: %w", err))
	}
	return doctors, total, f, nil
}

// Pending is the administrator review queue.
func (s *Service) Pending(ctx context.Context, actor model.Actor, page model.Pagination) ([]*model.Doctor, int, model.ListingFilter, error) {
	if err := s.workflow.RequireAdmin(actor, "review doctors"); err != nil {
		return nil, 0, model.ListingFilter{}, err
	}
	return s.List(ctx, actor, model.ListingFilter{Pagination: page, Status: string(model.ListingPending)})
}

// Mine returns the listings owned by actor.
func (s *Service) Mine(ctx context.Context, actor model.Actor) ([]*model.Doctor, error) {
	if !actor.IsAuthenticated() {
		return nil, errors.Unauthorized(nil)
	}
	doctors, err := s.repo.GetByOwner(ctx, actor.ID)
	if err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to load own doctors: %w", err))
	}
	return doctors, nil
}
