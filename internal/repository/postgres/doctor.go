package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/dravail-api/internal/model"
	"github.com/jwalitptl/dravail-api/internal/repository"
)

const doctorColumns = `id, owner_id, slug, status, is_verified, reject_reason, version, name, reg_number,
	speciality, degree, age, gender, practice, experience, summary, city, district, email, phone,
	hospital_id, common_availability_id, current_availability_id, created_at, updated_at`

func (r *doctorRepository) Create(ctx context.Context, d *model.Doctor) error {
	if d.CommonAvailability == nil {
		return fmt.Errorf("doctor %s has no common availability", d.RegNumber)
	}

	// Availability rows belong to the doctor being created; ids from the
	// request body are never trusted.
	d.CommonAvailability.ID = uuid.New()
	if d.CurrentAvailability != nil {
		d.CurrentAvailability.ID = uuid.New()
	}

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := upsertAvailability(ctx, tx, d.CommonAvailability); err != nil {
			return err
		}
		d.CommonAvailabilityID = d.CommonAvailability.ID

		if d.CurrentAvailability != nil {
			if err := upsertAvailability(ctx, tx, d.CurrentAvailability); err != nil {
				return err
			}
			d.CurrentAvailabilityID = &d.CurrentAvailability.ID
		}

		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		now := time.Now().UTC()
		d.CreatedAt, d.UpdatedAt = now, now
		d.Version = 1

		query := `
			INSERT INTO doctors (` + doctorColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`

		_, err := tx.ExecContext(ctx, query,
			d.ID, d.OwnerID, d.Slug, d.Status, d.IsVerified, d.RejectReason, d.Version, d.Name, d.RegNumber,
			d.Speciality, d.Degree, d.Age, d.Gender, d.Practice, d.Experience, d.Summary, d.City, d.District,
			d.EmailID, d.PhoneNumber, d.HospitalID, d.CommonAvailabilityID, d.CurrentAvailabilityID,
			d.CreatedAt, d.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create doctor: %w", mapError(err))
		}
		return nil
	})
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	var d model.Doctor
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1`
	if err := r.db.GetContext(ctx, &d, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	if err := r.loadAvailabilities(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *doctorRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Doctor, error) {
	var doctors []*model.Doctor
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE owner_id = $1 ORDER BY name ASC`
	if err := r.db.SelectContext(ctx, &doctors, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list doctors by owner: %w", err)
	}
	for _, d := range doctors {
		if err := r.loadAvailabilities(ctx, d); err != nil {
			return nil, err
		}
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, d *model.Doctor) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		d.UpdatedAt = time.Now().UTC()

		if d.CommonAvailability != nil {
			d.CommonAvailability.ID = d.CommonAvailabilityID
		}
		if d.CurrentAvailability != nil {
			if d.CurrentAvailabilityID != nil {
				d.CurrentAvailability.ID = *d.CurrentAvailabilityID
			} else {
				d.CurrentAvailability.ID = uuid.New()
			}
		}

		query := `
			UPDATE doctors SET
				status = $1, is_verified = $2, reject_reason = $3, name = $4, reg_number = $5,
				speciality = $6, degree = $7, age = $8, gender = $9, practice = $10, experience = $11,
				summary = $12, city = $13, district = $14, email = $15, phone = $16, hospital_id = $17,
				slug = $18, updated_at = $19, version = version + 1
			WHERE id = $20 AND version = $21`

		result, err := tx.ExecContext(ctx, query,
			d.Status, d.IsVerified, d.RejectReason, d.Name, d.RegNumber,
			d.Speciality, d.Degree, d.Age, d.Gender, d.Practice, d.Experience,
			d.Summary, d.City, d.District, d.EmailID, d.PhoneNumber, d.HospitalID,
			d.Slug, d.UpdatedAt, d.ID, d.Version,
		)
		if err != nil {
			return fmt.Errorf("failed to update doctor: %w", mapError(err))
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if rows == 0 {
			return r.staleOrMissing(ctx, tx, "doctors", d.ID)
		}

		if d.CommonAvailability != nil {
			if err := upsertAvailability(ctx, tx, d.CommonAvailability); err != nil {
				return err
			}
		}
		if d.CurrentAvailability != nil {
			if err := upsertAvailability(ctx, tx, d.CurrentAvailability); err != nil {
				return err
			}
			if d.CurrentAvailabilityID == nil {
				id := d.CurrentAvailability.ID
				if _, err := tx.ExecContext(ctx,
					`UPDATE doctors SET current_availability_id = $1 WHERE id = $2`, id, d.ID); err != nil {
					return fmt.Errorf("failed to link current availability: %w", err)
				}
				d.CurrentAvailabilityID = &id
			}
		}

		d.Version++
		return nil
	})
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID, version int) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var refs struct {
			Common  uuid.UUID  `db:"common_availability_id"`
			Current *uuid.UUID `db:"current_availability_id"`
		}
		query := `
			DELETE FROM doctors WHERE id = $1 AND version = $2
			RETURNING common_availability_id, current_availability_id`
		if err := tx.GetContext(ctx, &refs, query, id, version); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return r.staleOrMissing(ctx, tx, "doctors", id)
			}
			return fmt.Errorf("failed to delete doctor: %w", err)
		}

		ids := []uuid.UUID{refs.Common}
		if refs.Current != nil {
			ids = append(ids, *refs.Current)
		}
		return deleteAvailabilities(ctx, tx, ids...)
	})
}

func (r *doctorRepository) List(ctx context.Context, filter *model.ListingFilter) ([]*model.Doctor, int, error) {
	where, args := listingWhere(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM doctors`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count doctors: %w", err)
	}

	page, pageArgs := pageClause(filter, args)
	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, `SELECT `+doctorColumns+` FROM doctors`+where+page, pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to list doctors: %w", err)
	}
	for _, d := range doctors {
		if err := r.loadAvailabilities(ctx, d); err != nil {
			return nil, 0, err
		}
	}
	return doctors, total, nil
}

func (r *doctorRepository) loadAvailabilities(ctx context.Context, d *model.Doctor) error {
	common, err := getAvailability(ctx, r.db, d.CommonAvailabilityID)
	if err != nil {
		return err
	}
	d.CommonAvailability = common

	if d.CurrentAvailabilityID != nil {
		current, err := getAvailability(ctx, r.db, *d.CurrentAvailabilityID)
		if err != nil {
			return err
		}
		d.CurrentAvailability = current
	}
	return nil
}
