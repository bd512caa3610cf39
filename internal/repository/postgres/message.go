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

const messageColumns = `id, reference, sender_name, sender_email, recipient, subject, body, kind,
	sender_fingerprint, date_sent, admin_response, date_responded`

func (r *messageRepository) Create(ctx context.Context, m *model.Message) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.DateSent.IsZero() {
		m.DateSent = time.Now().UTC()
	}

	query := `
		INSERT INTO messages (` + messageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Reference, m.SenderName, m.SenderEmail, m.Recipient, m.Subject, m.Body, m.Kind,
		m.SenderFingerprint, m.DateSent, m.AdminResponse, m.DateResponded,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *messageRepository) Get(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	var m model.Message
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`
	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return &m, nil
}

func (r *messageRepository) List(ctx context.Context, kind model.MessageKind) ([]*model.Message, error) {
	var messages []*model.Message
	query := `SELECT ` + messageColumns + ` FROM messages WHERE ($1 = '' OR kind = $1) ORDER BY date_sent DESC`
	if err := r.db.SelectContext(ctx, &messages, query, string(kind)); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// Respond sets the administrator reply once. A message that already carries a
// response yields ErrConflict.
func (r *messageRepository) Respond(ctx context.Context, id uuid.UUID, response string) (*model.Message, error) {
	var m model.Message
	query := `
		UPDATE messages SET admin_response = $1, date_responded = $2
		WHERE id = $3 AND admin_response IS NULL
		RETURNING ` + messageColumns

	if err := r.db.GetContext(ctx, &m, query, response, time.Now().UTC(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.staleOrMissing(ctx, r.db, "messages", id)
		}
		return nil, fmt.Errorf("failed to respond to message: %w", err)
	}
	return &m, nil
}
