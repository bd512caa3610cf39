package rbac

import (
	"context"

	"github.com/jwalitptl/dravail-api/internal/approval"
	"github.com/jwalitptl/dravail-api/internal/model"
)

// Authorizer decides whether an actor holds a capability on a listing. The
// listing's owner and verification state are inputs to the decision.
type Authorizer interface {
	Authorize(ctx context.Context, actor model.Actor, listing model.Listing, capability approval.Capability) (bool, error)
}

// Service is the ownership policy: owners manage their own listings and
// administrators manage every listing and are the only ones who can approve.
type Service struct {
	adminRole string
}

func NewService() *Service {
	return &Service{adminRole: model.AdministratorsRole}
}

func (s *Service) isAdmin(actor model.Actor) bool {
	return actor.IsAuthenticated() && actor.HasRole(s.adminRole)
}

func isOwner(actor model.Actor, listing model.Listing) bool {
	return actor.IsAuthenticated() && listing.Meta().OwnerID == actor.ID
}

func (s *Service) Authorize(_ context.Context, actor model.Actor, listing model.Listing, capability approval.Capability) (bool, error) {
	if listing == nil {
		return false, nil
	}

	switch capability {
	case approval.Create:
		return isOwner(actor, listing), nil
	case approval.Update, approval.Delete:
		return isOwner(actor, listing) || s.isAdmin(actor), nil
	case approval.Approve:
		return s.isAdmin(actor), nil
	default:
		return false, nil
	}
}

// CanView lets anyone see a verified listing. Unverified listings are visible
// to the owner and administrators only.
func (s *Service) CanView(actor model.Actor, listing model.Listing) bool {
	if listing.Meta().IsVerified {
		return true
	}
	return isOwner(actor, listing) || s.isAdmin(actor)
}
