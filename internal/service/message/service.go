package message

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"

	"github.com/jwalitptl/dravail-api/internal/model"
	"github.com/jwalitptl/dravail-api/internal/repository"
	"github.com/jwalitptl/dravail-api/pkg/errors"
	"github.com/jwalitptl/dravail-api/pkg/validator"
)

const referenceAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// SubmitRequest is a visitor's contact message.
type SubmitRequest struct {
	SenderName  string `json:"sender_name" validate:"required,max=100"`
	SenderEmail string `json:"sender_email" validate:"required,email"`
	Subject     string `json:"subject" validate:"required,max=200"`
	Body        string `json:"body" validate:"required,max=5000"`
}

type Service struct {
	repo      repository.MessageRepository
	validator *validator.Validator
	key       []byte
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService builds the contact message service. key salts the client IP
// fingerprint and may be empty.
func NewService(repo repository.MessageRepository, v *validator.Validator, key []byte, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: v,
		key:       key,
		logger:    logger.With().Str("component", "messages").Logger(),
		now:       time.Now,
	}
}

// Fingerprint hashes the client IP with BLAKE2b. Only the hash is stored.
func (s *Service) Fingerprint(clientIP string) (string, error) {
	h, err := blake2b.New256(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to init fingerprint hash: %w", err)
	}
	h.Write([]byte(strings.TrimSpace(clientIP)))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Submit stores a message from any visitor for the administrators.
func (s *Service) Submit(ctx context.Context, req SubmitRequest, clientIP string) (*model.Message, error) {
	if problems := s.validator.Validate(req); len(problems) > 0 {
		return nil, errors.Validation("invalid message", problems)
	}

	fp, err := s.Fingerprint(clientIP)
	if err != nil {
		return nil, errors.Internal(err)
	}
	ref, err := gonanoid.Generate(referenceAlphabet, 8)
	if err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to generate reference: %w", err))
	}

	msg := &model.Message{
		ID:                uuid.New(),
		Reference:         ref,
		SenderName:        strings.TrimSpace(req.SenderName),
		SenderEmail:       strings.TrimSpace(req.SenderEmail),
		Subject:           strings.TrimSpace(req.Subject),
		Body:              req.Body,
		Kind:              model.MessageUserToAdmin,
		SenderFingerprint: fp,
		DateSent:          s.now().UTC(),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to store message: %w", err))
	}

	s.logger.Info().Str("reference", ref).Str("fingerprint", fp[:12]).Msg("contact message received")
	return msg, nil
}

// List returns messages of the given kind, newest first. An empty kind lists
// both directions.
func (s *Service) List(ctx context.Context, actor model.Actor, kind model.MessageKind) ([]*model.Message, error) {
	if !actor.IsAdmin() {
		return nil, errors.Forbidden("read messages")
	}
	if kind != "" && kind != model.MessageUserToAdmin && kind != model.MessageAdminToUser {
		return nil, errors.BadRequest(fmt.Sprintf("unknown message kind %q", kind), nil)
	}
	msgs, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to list messages: %w", err))
	}
	return msgs, nil
}

func (s *Service) Get(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Message, error) {
	if !actor.IsAdmin() {
		return nil, errors.Forbidden("read messages")
	}
	msg, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("message", err)
		}
		return nil, errors.Internal(fmt.Errorf("failed to get message: %w", err))
	}
	return msg, nil
}

// Respond stores the administrator's reply. A message is answered once.
func (s *Service) Respond(ctx context.Context, id uuid.UUID, actor model.Actor, response string) (*model.Message, error) {
	if !actor.IsAdmin() {
		return nil, errors.Forbidden("respond to messages")
	}
	if strings.TrimSpace(response) == "" {
		return nil, errors.Validation("response is required", []validator.FieldError{{
			Field:   "response",
			Tag:     "required",
			Message: "response is required",
		}})
	}

	msg, err := s.repo.Respond(ctx, id, response)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, errors.NotFound("message", err)
		case errors.Is(err, repository.ErrConflict):
			return nil, errors.Conflict("message already answered", err)
		default:
			return nil, errors.Internal(fmt.Errorf("failed to respond to message: %w", err))
		}
	}

	s.logger.Info().Str("message_id", id.String()).Str("admin_id", actor.ID.String()).Msg("message answered")
	return msg, nil
}
