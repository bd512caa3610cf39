package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/dravail-api/internal/model"
	"github.com/jwalitptl/dravail-api/internal/repository"
)

const hospitalColumns = `id, owner_id, slug, status, is_verified, reject_reason, version, name, type,
	address, city, district, email, phone, created_at, updated_at`

func (r *hospitalRepository) Create(ctx context.Context, h *model.Hospital) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	now := time.Now().UTC()
	h.CreatedAt, h.UpdatedAt = now, now
	h.Version = 1

	query := `
		INSERT INTO hospitals (` + hospitalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.ExecContext(ctx, query,
		h.ID, h.OwnerID, h.Slug, h.Status, h.IsVerified, h.RejectReason, h.Version, h.Name, h.Type,
		h.Address, h.City, h.District, h.EmailID, h.PhoneNumber, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create hospital: %w", mapError(err))
	}
	return nil
}

func (r *hospitalRepository) Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error) {
	var h model.Hospital
	query := `SELECT ` + hospitalColumns + ` FROM hospitals WHERE id = $1`
	if err := r.db.GetContext(ctx, &h, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}
	return &h, nil
}

func (r *hospitalRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Hospital, error) {
	var hospitals []*model.Hospital
	query := `SELECT ` + hospitalColumns + ` FROM hospitals WHERE owner_id = $1 ORDER BY name ASC`
	if err := r.db.SelectContext(ctx, &hospitals, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list hospitals by owner: %w", err)
	}
	return hospitals, nil
}

func (r *hospitalRepository) Update(ctx context.Context, h *model.Hospital) error {
	h.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE hospitals SET
			status = $1, is_verified = $2, reject_reason = $3, name = $4, type = $5,
			address = $6, city = $7, district = $8, email = $9, phone = $10,
			slug = $11, updated_at = $12, version = version + 1
		WHERE id = $13 AND version = $14`

	result, err := r.db.ExecContext(ctx, query,
		h.Status, h.IsVerified, h.RejectReason, h.Name, h.Type,
		h.Address, h.City, h.District, h.EmailID, h.PhoneNumber,
		h.Slug, h.UpdatedAt, h.ID, h.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update hospital: %w", mapError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return r.staleOrMissing(ctx, r.db, "hospitals", h.ID)
	}

	h.Version++
	return nil
}

func (r *hospitalRepository) Delete(ctx context.Context, id uuid.UUID, version int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM hospitals WHERE id = $1 AND version = $2`, id, version)
	if err != nil {
		return fmt.Errorf("failed to delete hospital: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return r.staleOrMissing(ctx, r.db, "hospitals", id)
	}
	return nil
}

func (r *hospitalRepository) List(ctx context.Context, filter *model.ListingFilter) ([]*model.Hospital, int, error) {
	where, args := listingWhere(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM hospitals`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count hospitals: %w", err)
	}

	page, pageArgs := pageClause(filter, args)
	var hospitals []*model.Hospital
	if err := r.db.SelectContext(ctx, &hospitals, `SELECT `+hospitalColumns+` FROM hospitals`+where+page, pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return hospitals, total, nil
}
