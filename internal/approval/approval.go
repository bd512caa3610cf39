// Package approval holds the verification state machine of a listing.
//
//	unsubmitted --create--> pending --approve--> verified
//	                           |  ^                  |
//	                        reject |    owner edit    |
//	                           v  |                  |
//	                        rejected <---------------+
//
// An edit by someone who cannot approve sends a verified or rejected listing
// back to pending. An edit by an approver keeps the current state.
package approval

import (
	"fmt"

	"github.com/jwalitptl/dravail-api/internal/model"
)

// Capability is a named permission checked against an actor and a listing.
type Capability string

const (
	Create  Capability = "Create"
	Update  Capability = "Update"
	Approve Capability = "Approve"
	Delete  Capability = "Delete"
)

// Operation names the outcome of a review. It also serves as the subject
// of the notification sent to the owner.
type Operation string

const (
	OperationApprove Operation = "Approve"
	OperationReject  Operation = "Reject"
)

// OperationFor maps a boolean decision onto its operation.
func OperationFor(approve bool) Operation {
	if approve {
		return OperationApprove
	}
	return OperationReject
}

// OnCreate moves a new listing into review.
func OnCreate(b *model.ListingBase) error {
	if b.Status != "" && b.Status != model.ListingUnsubmitted {
		return fmt.Errorf("listing already submitted with status %q", b.Status)
	}
	b.SetStatus(model.ListingPending)
	b.RejectReason = nil
	return nil
}

// OnEdit applies the re-review rule to a content edit. current is the stored
// state; canApprove tells whether the editor holds the Approve capability.
func OnEdit(current model.ListingStatus, canApprove bool) model.ListingStatus {
	if canApprove {
		return current
	}
	switch current {
	case model.ListingVerified, model.ListingRejected:
		return model.ListingPending
	default:
		return current
	}
}

// OnDecision records an administrator decision. The reason is kept only for
// rejections and is not required to be non-empty.
func OnDecision(b *model.ListingBase, approve bool, reason string) {
	if approve {
		b.SetStatus(model.ListingVerified)
		b.RejectReason = nil
		return
	}
	b.SetStatus(model.ListingRejected)
	b.RejectReason = &reason
}

const (
	approvedBody = "<h3>Congratulations!</h3><br> Your account got approved"
	rejectedBody = "Your account is rejected. Please review and update your profile <br> Reject Reason: <br>"
)

// NotificationBody renders the HTML sent to the owner after a decision.
func NotificationBody(approve bool, reason string) string {
	if approve {
		return approvedBody
	}
	return rejectedBody + reason
}
