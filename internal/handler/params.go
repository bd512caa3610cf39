// Package handler holds request helpers shared by the HTTP handlers.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/dravail-api/pkg/errors"
)

// ParseID reads a UUID path parameter.
func ParseID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.BadRequest("invalid "+name, err)
	}
	return id, nil
}

// QueryVersion reads the optional ?version= used for optimistic deletes.
// A missing value returns 0.
func QueryVersion(c *gin.Context) (int, error) {
	raw := c.Query("version")
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errors.BadRequest("version must be a non-negative integer", err)
	}
	return v, nil
}

// BindJSON decodes the body and reports malformed input as a bad request.
func BindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return errors.BadRequest("invalid request body: "+err.Error(), err)
	}
	return nil
}

// DecisionRequest is the body of an approve or reject call.
type DecisionRequest struct {
	Approve *bool  `json:"approve" binding:"required"`
	Reason  string `json:"reason"`
}
