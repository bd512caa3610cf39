package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jwalitptl/dravail-api/internal/model"
)

var (
	// ErrNotFound is returned when the referenced row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when the row changed since it was read, or a
	// unique key is already taken.
	ErrConflict = errors.New("record was modified concurrently")
)

// All repository interfaces in one file
type (
	// DoctorRepository persists doctor listings together with their
	// availability rows. Update and Delete compare the listing version and
	// return ErrConflict when it moved on.
	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id uuid.UUID, version int) error
		List(ctx context.Context, filter *model.ListingFilter) ([]*model.Doctor, int, error)
	}

	HospitalRepository interface {
		Create(ctx context.Context, hospital *model.Hospital) error
		Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error)
		GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Hospital, error)
		Update(ctx context.Context, hospital *model.Hospital) error
		Delete(ctx context.Context, id uuid.UUID, version int) error
		List(ctx context.Context, filter *model.ListingFilter) ([]*model.Hospital, int, error)
	}

	MessageRepository interface {
		Create(ctx context.Context, message *model.Message) error
		Get(ctx context.Context, id uuid.UUID) (*model.Message, error)
		List(ctx context.Context, kind model.MessageKind) ([]*model.Message, error)
		// Respond fills the response once; a second call returns ErrConflict.
		Respond(ctx context.Context, id uuid.UUID, response string) (*model.Message, error)
	}
)
