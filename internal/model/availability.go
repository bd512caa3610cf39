package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReferenceDate is the calendar day every ClockTime is pinned to, so two
// times compare purely by wall-clock value.
var ReferenceDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

const clockLayout = "15:04"

// ClockTime is a time of day. The date component is ignored.
type ClockTime struct {
	time.Time
}

// NewClockTime builds a ClockTime on the reference date.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{time.Date(ReferenceDate.Year(), ReferenceDate.Month(), ReferenceDate.Day(), hour, minute, 0, 0, time.UTC)}
}

// ClockOf drops the date part of t.
func ClockOf(t time.Time) ClockTime {
	return ClockTime{time.Date(ReferenceDate.Year(), ReferenceDate.Month(), ReferenceDate.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)}
}

// ParseClockTime accepts "HH:MM", "HH:MM:SS" or an RFC 3339 timestamp.
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{clockLayout, "15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockOf(t), nil
		}
	}
	return ClockTime{}, fmt.Errorf("invalid clock time %q", s)
}

// Normalized returns the value pinned to the reference date.
func (c ClockTime) Normalized() ClockTime {
	return ClockOf(c.Time)
}

func (c ClockTime) String() string {
	return c.Time.Format(clockLayout)
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("clock time must be a string: %w", err)
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// TimeWindow is a start/end pair within one day.
type TimeWindow struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

// Timings is the full-day schedule for one period: a morning and an evening
// window.
type Timings struct {
	MorningStart ClockTime `json:"morning_start"`
	MorningEnd   ClockTime `json:"morning_end"`
	EveningStart ClockTime `json:"evening_start"`
	EveningEnd   ClockTime `json:"evening_end"`
}

func (t Timings) Morning() TimeWindow {
	return TimeWindow{Start: t.MorningStart, End: t.MorningEnd}
}

func (t Timings) Evening() TimeWindow {
	return TimeWindow{Start: t.EveningStart, End: t.EveningEnd}
}

// Value stores Timings as JSONB.
func (t Timings) Value() (driver.Value, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *Timings) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported timings source %T", src)
	}
}

// NullTimings is a nullable Timings column.
type NullTimings struct {
	Timings *Timings
}

func (n NullTimings) Value() (driver.Value, error) {
	if n.Timings == nil {
		return nil, nil
	}
	return n.Timings.Value()
}

func (n *NullTimings) Scan(src interface{}) error {
	if src == nil {
		n.Timings = nil
		return nil
	}
	var t Timings
	if err := t.Scan(src); err != nil {
		return err
	}
	n.Timings = &t
	return nil
}

// AvailabilityKind separates the recurring schedule from a one-off override.
type AvailabilityKind string

const (
	AvailabilityCommon  AvailabilityKind = "Common"
	AvailabilityCurrent AvailabilityKind = "Current"
)

// ContactPreference says when a doctor accepts contact.
type ContactPreference string

const (
	ContactAlways        ContactPreference = "Always"
	ContactEmergencyOnly ContactPreference = "EmergencyOnly"
	ContactNever         ContactPreference = "Never"
)

const AvailabilityStatusAvailable = "Available"

// Availability is one availability record of a doctor.
type Availability struct {
	ID                   uuid.UUID         `json:"id" db:"id"`
	AvailabilityType     string            `json:"availability_type" db:"availability_type"`
	Kind                 AvailabilityKind  `json:"kind" db:"kind"`
	Status               string            `json:"status" db:"status"`
	CommonDays           Timings           `json:"common_days" db:"common_days"`
	IsAvailableOnWeekend bool              `json:"is_available_on_weekend" db:"is_available_on_weekend"`
	WeekendSameAsCommon  bool              `json:"weekend_same_as_common" db:"weekend_same_as_common"`
	Weekends             *Timings          `json:"weekends,omitempty" db:"-"`
	CurrentStart         *time.Time        `json:"current_start,omitempty" db:"current_start"`
	CurrentEnd           *time.Time        `json:"current_end,omitempty" db:"current_end"`
	ContactPreference    ContactPreference `json:"contact_preference" db:"contact_preference"`
	HospitalID           *uuid.UUID        `json:"hospital_id,omitempty" db:"hospital_id"`
}
