// Package listing runs the ownership and verification workflow shared by
// doctor and hospital listings.
package listing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/dravail-api/internal/approval"
	"github.com/jwalitptl/dravail-api/internal/model"
	"github.com/jwalitptl/dravail-api/internal/repository"
	"github.com/jwalitptl/dravail-api/internal/service/notification"
	"github.com/jwalitptl/dravail-api/internal/service/rbac"
	"github.com/jwalitptl/dravail-api/pkg/errors"
	"github.com/jwalitptl/dravail-api/pkg/metrics"
)

// Policy is the authorization port plus the visibility rule for unverified
// listings.
type Policy interface {
	rbac.Authorizer
	CanView(actor model.Actor, listing model.Listing) bool
}

const maxPageSize = 100

// maxPage keeps the row offset well inside an int32.
const maxPage = 100000

type Config struct {
	PageSize      int
	NotifyTimeout time.Duration
}

type Service struct {
	kind     model.ListingKind
	store    Store
	policy   Policy
	notifier notification.Notifier
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	cfg      Config
	now      func() time.Time
}

func NewService(kind model.ListingKind, store Store, policy Policy, notifier notification.Notifier, m *metrics.Metrics, logger zerolog.Logger, cfg Config) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 4
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 10 * time.Second
	}
	return &Service{
		kind:     kind,
		store:    store,
		policy:   policy,
		notifier: notifier,
		metrics:  m,
		logger:   logger.With().Str("listing_kind", string(kind)).Logger(),
		cfg:      cfg,
		now:      time.Now,
	}
}

// Slug builds the URL name of a listing from its display name and the first
// block of its ID, which keeps slugs unique across namesakes.
func Slug(l model.Listing) string {
	return slug.Make(l.DisplayName()) + "-" + l.Meta().ID.String()[:8]
}

func (s *Service) resource() string {
	return string(s.kind)
}

func (s *Service) mapStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return errors.NotFound(s.resource(), err)
	case errors.Is(err, repository.ErrConflict):
		return errors.Conflict(fmt.Sprintf("%s was modified by someone else, reload and retry", s.resource()), err)
	default:
		return errors.Internal(err)
	}
}

func (s *Service) authorize(ctx context.Context, actor model.Actor, l model.Listing, capability approval.Capability) (bool, error) {
	ok, err := s.policy.Authorize(ctx, actor, l, capability)
	if err != nil {
		return false, errors.Internal(fmt.Errorf("failed to authorize %s: %w", capability, err))
	}
	return ok, nil
}

// Create submits a new listing owned by actor. The listing enters review.
func (s *Service) Create(ctx context.Context, actor model.Actor, l model.Listing) error {
	meta := l.Meta()
	meta.OwnerID = actor.ID
	if meta.ID == uuid.Nil {
		meta.ID = uuid.New()
	}

	ok, err := s.authorize(ctx, actor, l, approval.Create)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Forbidden("create " + s.resource())
	}

	meta.Slug = Slug(l)
	meta.Status = model.ListingUnsubmitted
	if err := approval.OnCreate(meta); err != nil {
		return errors.BadRequest(err.Error(), err)
	}

	if err := s.store.Create(ctx, l); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return errors.Conflict(fmt.Sprintf("%s already exists", s.resource()), err)
		}
		return s.mapStoreError(err)
	}

	s.metrics.ListingSubmissions.WithLabelValues(s.resource(), string(meta.Status)).Inc()
	s.logger.Info().
		Str("listing_id", meta.ID.String()).
		Str("owner_id", actor.ID.String()).
		Msg("listing submitted for review")
	return nil
}

// Get loads a listing. Unverified listings are visible to their owner and to
// administrators only.
func (s *Service) Get(ctx context.Context, actor model.Actor, id uuid.UUID) (model.Listing, error) {
	l, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.mapStoreError(err)
	}
	if !s.policy.CanView(actor, l) {
		return nil, errors.Forbidden("view " + s.resource())
	}
	return l, nil
}

// SubmitEdit replaces the content of listing id with content. content must
// carry the version the editor read. An edit by someone without the Approve
// capability sends a verified or rejected listing back to review.
func (s *Service) SubmitEdit(ctx context.Context, id uuid.UUID, actor model.Actor, content model.Listing) error {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return s.mapStoreError(err)
	}

	ok, err := s.authorize(ctx, actor, current, approval.Update)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Forbidden("edit " + s.resource())
	}
	canApprove, err := s.authorize(ctx, actor, current, approval.Approve)
	if err != nil {
		return err
	}

	cur, next := current.Meta(), content.Meta()
	if next.Version <= 0 {
		return errors.BadRequest("version is required", nil)
	}

	next.ID = cur.ID
	next.OwnerID = cur.OwnerID
	next.CreatedAt = cur.CreatedAt
	next.RejectReason = cur.RejectReason
	next.SetStatus(approval.OnEdit(cur.Status, canApprove))
	next.Slug = Slug(content)
	s.store.Preserve(current, content)

	if err := s.store.Update(ctx, content); err != nil {
		return s.mapStoreError(err)
	}

	s.metrics.ListingSubmissions.WithLabelValues(s.resource(), string(next.Status)).Inc()
	s.logger.Info().
		Str("listing_id", id.String()).
		Str("actor_id", actor.ID.String()).
		Str("from", string(cur.Status)).
		Str("to", string(next.Status)).
		Msg("listing edited")
	return nil
}

// Decide records an administrator's approval or rejection and notifies the
// owner. A failed notification is logged and counted; the decision stands.
func (s *Service) Decide(ctx context.Context, id uuid.UUID, actor model.Actor, approve bool, reason string) (*model.Decision, error) {
	l, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.mapStoreError(err)
	}

	ok, err := s.authorize(ctx, actor, l, approval.Approve)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Forbidden("approve " + s.resource())
	}

	meta := l.Meta()
	approval.OnDecision(meta, approve, reason)
	if err := s.store.Update(ctx, l); err != nil {
		return nil, s.mapStoreError(err)
	}

	decision := &model.Decision{
		ListingID: meta.ID,
		Kind:      s.kind,
		Status:    meta.Status,
		DecidedBy: actor.ID,
		DecidedAt: s.now().UTC(),
	}
	if !approve {
		decision.Reason = reason
	}

	s.metrics.ListingDecisions.WithLabelValues(s.resource(), string(meta.Status)).Inc()
	s.logger.Info().
		Str("listing_id", meta.ID.String()).
		Str("admin_id", actor.ID.String()).
		Str("status", string(meta.Status)).
		Msg("listing decided")

	s.notify(ctx, actor, l, approve, reason)
	return decision, nil
}

func (s *Service) notify(ctx context.Context, actor model.Actor, l model.Listing, approve bool, reason string) {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.NotifyTimeout)
	defer cancel()

	n := model.Notification{
		Recipient: l.ContactEmail(),
		Subject:   string(approval.OperationFor(approve)),
		BodyHTML:  approval.NotificationBody(approve, reason),
		ActorName: actor.DisplayName(),
		Kind:      model.MessageAdminToUser,
	}
	if err := s.notifier.Send(nctx, n); err != nil {
		s.metrics.NotificationFailures.WithLabelValues("decision").Inc()
		s.logger.Error().
			Err(err).
			Str("listing_id", l.Meta().ID.String()).
			Str("recipient", n.Recipient).
			Msg("failed to notify listing owner")
	}
}

// Delete removes a listing. version 0 deletes whatever version is stored.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor model.Actor, version int) error {
	l, err := s.store.Get(ctx, id)
	if err != nil {
		return s.mapStoreError(err)
	}

	ok, err := s.authorize(ctx, actor, l, approval.Delete)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Forbidden("delete " + s.resource())
	}

	if version == 0 {
		version = l.Meta().Version
	}
	if err := s.store.Delete(ctx, id, version); err != nil {
		return s.mapStoreError(err)
	}

	s.logger.Info().
		Str("listing_id", id.String()).
		Str("actor_id", actor.ID.String()).
		Msg("listing deleted")
	return nil
}

// ScopeFilter applies the browse visibility rule for actor: administrators
// see everything, signed-in users see verified listings and their own, and
// anonymous visitors see verified listings only.
func (s *Service) ScopeFilter(actor model.Actor, filter model.ListingFilter) model.ListingFilter {
	filter.IncludeAll = actor.IsAdmin()
	filter.ViewerID = uuid.Nil
	if actor.IsAuthenticated() {
		filter.ViewerID = actor.ID
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Page > maxPage {
		filter.Page = maxPage
	}
	if filter.PageSize <= 0 || filter.PageSize > maxPageSize {
		filter.PageSize = s.cfg.PageSize
	}
	return filter
}

// RequireAdmin guards administrator-only views such as the review queue.
func (s *Service) RequireAdmin(actor model.Actor, action string) error {
	if !actor.IsAdmin() {
		return errors.Forbidden(action)
	}
	return nil
}
