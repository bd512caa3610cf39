package model

import (
	"time"

	"github.com/google/uuid"
)

// ListingStatus is the verification state of a doctor or hospital listing.
type ListingStatus string

const (
	ListingUnsubmitted ListingStatus = "unsubmitted"
	ListingPending     ListingStatus = "pending"
	ListingVerified    ListingStatus = "verified"
	ListingRejected    ListingStatus = "rejected"
)

// ListingKind names the table a listing lives in.
type ListingKind string

const (
	KindDoctor   ListingKind = "doctor"
	KindHospital ListingKind = "hospital"
)

// ListingBase holds the ownership and verification fields shared by every
// listing. IsVerified mirrors Status == ListingVerified.
type ListingBase struct {
	Base
	OwnerID      uuid.UUID     `json:"owner_id" db:"owner_id"`
	Slug         string        `json:"slug" db:"slug"`
	Status       ListingStatus `json:"status" db:"status"`
	IsVerified   bool          `json:"is_verified" db:"is_verified"`
	RejectReason *string       `json:"reject_reason,omitempty" db:"reject_reason"`
	Version      int           `json:"version" db:"version"`
}

// Meta exposes the shared fields. Embedding ListingBase makes a type a Listing.
func (b *ListingBase) Meta() *ListingBase {
	return b
}

// SetStatus keeps IsVerified in step with Status.
func (b *ListingBase) SetStatus(status ListingStatus) {
	b.Status = status
	b.IsVerified = status == ListingVerified
}

// Listing is a Doctor or Hospital record subject to owner submission and
// administrator verification.
type Listing interface {
	Meta() *ListingBase
	Kind() ListingKind
	DisplayName() string
	ContactEmail() string
}

// Doctor is an individual doctor's listing.
type Doctor struct {
	ListingBase
	Name                  string        `json:"name" db:"name" validate:"required,min=3,max=60"`
	RegNumber             string        `json:"reg_number" db:"reg_number" validate:"required,max=20"`
	Speciality            Speciality    `json:"speciality" db:"speciality" validate:"required,speciality"`
	Degree                string        `json:"degree" db:"degree" validate:"required,max=100"`
	Age                   int           `json:"age" db:"age" validate:"gte=18,lte=100"`
	Gender                Gender        `json:"gender" db:"gender" validate:"required,gender"`
	Practice              Practice      `json:"practice" db:"practice" validate:"required,practice"`
	Experience            float64       `json:"experience" db:"experience" validate:"gte=0,lte=80"`
	Summary               string        `json:"summary" db:"summary" validate:"max=2000"`
	City                  string        `json:"city" db:"city" validate:"required,max=60"`
	District              District      `json:"district" db:"district" validate:"required,district"`
	EmailID               string        `json:"email" db:"email" validate:"required,email"`
	PhoneNumber           string        `json:"phone" db:"phone" validate:"required,max=20"`
	HospitalID            *uuid.UUID    `json:"hospital_id,omitempty" db:"hospital_id"`
	CommonAvailabilityID  uuid.UUID     `json:"-" db:"common_availability_id"`
	CurrentAvailabilityID *uuid.UUID    `json:"-" db:"current_availability_id"`
	CommonAvailability    *Availability `json:"common_availability,omitempty" db:"-"`
	CurrentAvailability   *Availability `json:"current_availability,omitempty" db:"-"`
}

func (d *Doctor) Kind() ListingKind    { return KindDoctor }
func (d *Doctor) DisplayName() string  { return d.Name }
func (d *Doctor) ContactEmail() string { return d.EmailID }

// Hospital is a hospital or clinic listing.
type Hospital struct {
	ListingBase
	Name        string       `json:"name" db:"name" validate:"required,min=3,max=100"`
	Type        HospitalType `json:"type" db:"type" validate:"required,hospitaltype"`
	Address     string       `json:"address" db:"address" validate:"required,max=300"`
	City        string       `json:"city" db:"city" validate:"required,max=60"`
	District    District     `json:"district" db:"district" validate:"required,district"`
	EmailID     string       `json:"email" db:"email" validate:"required,email"`
	PhoneNumber string       `json:"phone" db:"phone" validate:"required,max=20"`
}

func (h *Hospital) Kind() ListingKind    { return KindHospital }
func (h *Hospital) DisplayName() string  { return h.Name }
func (h *Hospital) ContactEmail() string { return h.EmailID }

// Decision is the outcome of an administrator review.
type Decision struct {
	ListingID uuid.UUID     `json:"listing_id"`
	Kind      ListingKind   `json:"kind"`
	Status    ListingStatus `json:"status"`
	Reason    string        `json:"reason,omitempty"`
	DecidedBy uuid.UUID     `json:"decided_by"`
	DecidedAt time.Time     `json:"decided_at"`
}
