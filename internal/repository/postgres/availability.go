package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/dravail-api/internal/model"
)

const availabilityColumns = `id, availability_type, kind, status, common_days, is_available_on_weekend,
	weekend_same_as_common, weekends, current_start, current_end, contact_preference, hospital_id`

// availabilityRow adds the nullable weekends column that model.Availability
// keeps as a plain pointer.
type availabilityRow struct {
	model.Availability
	WeekendTimings model.NullTimings `db:"weekends"`
}

func (r *availabilityRow) toModel() *model.Availability {
	a := r.Availability
	a.Weekends = r.WeekendTimings.Timings
	return &a
}

func upsertAvailability(ctx context.Context, tx *sqlx.Tx, a *model.Availability) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	query := `
		INSERT INTO availabilities (` + availabilityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			availability_type = EXCLUDED.availability_type,
			kind = EXCLUDED.kind,
			status = EXCLUDED.status,
			common_days = EXCLUDED.common_days,
			is_available_on_weekend = EXCLUDED.is_available_on_weekend,
			weekend_same_as_common = EXCLUDED.weekend_same_as_common,
			weekends = EXCLUDED.weekends,
			current_start = EXCLUDED.current_start,
			current_end = EXCLUDED.current_end,
			contact_preference = EXCLUDED.contact_preference,
			hospital_id = EXCLUDED.hospital_id`

	_, err := tx.ExecContext(ctx, query,
		a.ID,
		a.AvailabilityType,
		a.Kind,
		a.Status,
		a.CommonDays,
		a.IsAvailableOnWeekend,
		a.WeekendSameAsCommon,
		model.NullTimings{Timings: a.Weekends},
		a.CurrentStart,
		a.CurrentEnd,
		a.ContactPreference,
		a.HospitalID,
	)
	if err != nil {
		return fmt.Errorf("failed to save availability: %w", mapError(err))
	}
	return nil
}

func getAvailability(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*model.Availability, error) {
	var row availabilityRow
	query := `SELECT ` + availabilityColumns + ` FROM availabilities WHERE id = $1`
	if err := sqlx.GetContext(ctx, q, &row, query, id); err != nil {
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}
	return row.toModel(), nil
}

func deleteAvailabilities(ctx context.Context, tx *sqlx.Tx, ids ...uuid.UUID) error {
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM availabilities WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete availability: %w", err)
		}
	}
	return nil
}
