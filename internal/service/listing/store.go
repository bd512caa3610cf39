package listing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/dravail-api/internal/model"
	"github.com/jwalitptl/dravail-api/internal/repository"
)

// Store is the persistence port of the workflow for one listing kind.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (model.Listing, error)
	Create(ctx context.Context, l model.Listing) error
	Update(ctx context.Context, l model.Listing) error
	Delete(ctx context.Context, id uuid.UUID, version int) error
	// Preserve copies storage-owned fields of current into next before an edit.
	Preserve(current, next model.Listing)
}

type doctorStore struct {
	repo repository.DoctorRepository
}

func NewDoctorStore(repo repository.DoctorRepository) Store {
	return &doctorStore{repo: repo}
}

func asDoctor(l model.Listing) (*model.Doctor, error) {
	d, ok := l.(*model.Doctor)
	if !ok {
		return nil, fmt.Errorf("expected *model.Doctor, got %T", l)
	}
	return d, nil
}

func (s *doctorStore) Get(ctx context.Context, id uuid.UUID) (model.Listing, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *doctorStore) Create(ctx context.Context, l model.Listing) error {
	d, err := asDoctor(l)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, d)
}

func (s *doctorStore) Update(ctx context.Context, l model.Listing) error {
	d, err := asDoctor(l)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, d)
}

func (s *doctorStore) Delete(ctx context.Context, id uuid.UUID, version int) error {
	return s.repo.Delete(ctx, id, version)
}

func (s *doctorStore) Preserve(current, next model.Listing) {
	cur, ok1 := current.(*model.Doctor)
	nxt, ok2 := next.(*model.Doctor)
	if !ok1 || !ok2 {
		return
	}
	nxt.CommonAvailabilityID = cur.CommonAvailabilityID
	nxt.CurrentAvailabilityID = cur.CurrentAvailabilityID
	if nxt.CommonAvailability == nil {
		nxt.CommonAvailability = cur.CommonAvailability
	}
}

type hospitalStore struct {
	repo repository.HospitalRepository
}

func NewHospitalStore(repo repository.HospitalRepository) Store {
	return &hospitalStore{repo: repo}
}

func asHospital(l model.Listing) (*model.Hospital, error) {
	h, ok := l.(*model.Hospital)
	if !ok {
		return nil, fmt.Errorf("expected *model.Hospital, got %T", l)
	}
	return h, nil
}

func (s *hospitalStore) Get(ctx context.Context, id uuid.UUID) (model.Listing, error) {
	h, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (s *hospitalStore) Create(ctx context.Context, l model.Listing) error {
	h, err := asHospital(l)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, h)
}

func (s *hospitalStore) Update(ctx context.Context, l model.Listing) error {
	h, err := asHospital(l)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, h)
}

func (s *hospitalStore) Delete(ctx context.Context, id uuid.UUID, version int) error {
	return s.repo.Delete(ctx, id, version)
}

func (s *hospitalStore) Preserve(_, _ model.Listing) {}
