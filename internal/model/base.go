package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Pagination represents common pagination parameters
type Pagination struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"page_size" form:"page_size"`
}

// Offset returns the row offset for the page, treating pages as 1-based.
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// ListingFilter narrows a browse query. ViewerID and IncludeAll are set by the
// service from the acting user, never from the request.
type ListingFilter struct {
	Pagination
	SearchTerm string    `json:"search_term" form:"search"`
	ViewerID   uuid.UUID `json:"-" form:"-"`
	IncludeAll bool      `json:"-" form:"-"`
	Status     string    `json:"status" form:"status"`
}
