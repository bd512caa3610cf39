package availability

import (
	"fmt"
	"strings"
)

// Code identifies the kind of a validation failure.
type Code string

const (
	CodeInvalidMinutes       Code = "invalid_minutes"
	CodeInvalidStartTime     Code = "invalid_start_time"
	CodeInvalidEndTime       Code = "invalid_end_time"
	CodeStartNotBeforeEnd    Code = "start_not_before_end"
	CodeWeekendRequired      Code = "weekend_required"
	CodeCurrentStartRequired Code = "current_start_required"
	CodeCurrentEndRequired   Code = "current_end_required"
)

// ValidationError is a user-fixable problem with one time window.
type ValidationError struct {
	Code    Code   `json:"code"`
	Label   string `json:"label,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidMinutes(label string) *ValidationError {
	return &ValidationError{Code: CodeInvalidMinutes, Label: label, Message: fmt.Sprintf("Invalid %s Minutes", label)}
}

func invalidStartTime(label string) *ValidationError {
	return &ValidationError{Code: CodeInvalidStartTime, Label: label, Message: fmt.Sprintf("Invalid %s Start Time", label)}
}

func invalidEndTime(label string) *ValidationError {
	return &ValidationError{Code: CodeInvalidEndTime, Label: label, Message: fmt.Sprintf("Invalid %s End Time", label)}
}

func startNotBeforeEnd(label string) *ValidationError {
	return &ValidationError{
		Code:    CodeStartNotBeforeEnd,
		Label:   label,
		Message: fmt.Sprintf("%s Start time should not be greater than %s End Time", label, label),
	}
}

// Errors is the ordered list of every problem found in one schedule.
type Errors []*ValidationError

func (e Errors) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Messages returns the display text of each error in order.
func (e Errors) Messages() []string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Message)
	}
	return msgs
}

// Err returns nil for an empty list so callers can use the usual err != nil.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) add(err error) Errors {
	if err == nil {
		return e
	}
	if ve, ok := err.(*ValidationError); ok {
		return append(e, ve)
	}
	return append(e, &ValidationError{Message: err.Error()})
}
