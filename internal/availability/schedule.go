package availability

import (
	"github.com/jwalitptl/dravail-api/internal/model"
)

var (
	errWeekendRequired = &ValidationError{
		Code:    CodeWeekendRequired,
		Message: "Weekend timing is required",
	}
	errCurrentStartRequired = &ValidationError{
		Code:    CodeCurrentStartRequired,
		Label:   LabelCurrent,
		Message: "CurrentStartDateTime is required",
	}
	errCurrentEndRequired = &ValidationError{
		Code:    CodeCurrentEndRequired,
		Label:   LabelCurrent,
		Message: "CurrentEndDateTime is required",
	}
)

// ValidateTimings checks the morning and evening windows of one period.
// Both windows are always checked.
func ValidateTimings(t model.Timings, morningLabel, eveningLabel string) Errors {
	var errs Errors
	errs = errs.add(ValidateMorning(t.Morning(), morningLabel))
	errs = errs.add(ValidateEvening(t.Evening(), eveningLabel))
	return errs
}

// ValidateSchedule collects every problem in a. It does not stop at the first
// failing window.
//
// When the weekend is enabled with WeekendSameAsCommon and the common days are
// valid, the common times are copied into Weekends and the weekend bounds are
// not checked again. On success all clock times are pinned to the reference
// date, so a is ready to persist.
func ValidateSchedule(a *model.Availability) Errors {
	if a.Kind == "" {
		a.Kind = model.AvailabilityCommon
	}

	errs := ValidateTimings(a.CommonDays, LabelMorning, LabelEvening)

	if a.IsAvailableOnWeekend {
		switch {
		case a.WeekendSameAsCommon && len(errs) == 0:
			weekends := a.CommonDays
			a.Weekends = &weekends
		case a.Weekends == nil:
			errs = append(errs, errWeekendRequired)
		default:
			errs = append(errs, ValidateTimings(*a.Weekends, LabelWeekendMorning, LabelWeekendEvening)...)
		}
	}

	if a.Kind == model.AvailabilityCurrent {
		if a.CurrentStart == nil {
			errs = append(errs, errCurrentStartRequired)
		}
		if a.CurrentEnd == nil {
			errs = append(errs, errCurrentEndRequired)
		}
		if a.CurrentStart != nil && a.CurrentEnd != nil && !a.CurrentStart.Before(*a.CurrentEnd) {
			errs = append(errs, startNotBeforeEnd(LabelCurrent))
		}
	}

	if len(errs) == 0 {
		normalize(a)
	}
	return errs
}

func normalize(a *model.Availability) {
	a.CommonDays = normalizeTimings(a.CommonDays)
	if a.Weekends != nil {
		w := normalizeTimings(*a.Weekends)
		a.Weekends = &w
	}
	if a.Status == "" {
		a.Status = model.AvailabilityStatusAvailable
	}
	if a.ContactPreference == "" {
		a.ContactPreference = model.ContactAlways
	}
}

func normalizeTimings(t model.Timings) model.Timings {
	return model.Timings{
		MorningStart: t.MorningStart.Normalized(),
		MorningEnd:   t.MorningEnd.Normalized(),
		EveningStart: t.EveningStart.Normalized(),
		EveningEnd:   t.EveningEnd.Normalized(),
	}
}

// TypeLabel derives the availability row label for an owner key, such as a
// doctor's registration number.
func TypeLabel(key string, kind model.AvailabilityKind) string {
	if kind == "" {
		kind = model.AvailabilityCommon
	}
	return key + "_" + string(kind)
}
