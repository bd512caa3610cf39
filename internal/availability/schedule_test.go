package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/dravail-api/internal/model"
)

func timings(ms, me, es, ee [2]int) model.Timings {
	return model.Timings{
		MorningStart: model.NewClockTime(ms[0], ms[1]),
		MorningEnd:   model.NewClockTime(me[0], me[1]),
		EveningStart: model.NewClockTime(es[0], es[1]),
		EveningEnd:   model.NewClockTime(ee[0], ee[1]),
	}
}

func validCommon() model.Timings {
	return timings([2]int{8, 0}, [2]int{10, 0}, [2]int{16, 0}, [2]int{18, 0})
}

func TestValidateSchedule_CommonDaysOnly(t *testing.T) {
	a := &model.Availability{CommonDays: validCommon()}

	errs := ValidateSchedule(a)

	assert.Empty(t, errs)
	assert.NoError(t, errs.Err())
	assert.Equal(t, model.AvailabilityCommon, a.Kind)
	assert.Equal(t, model.AvailabilityStatusAvailable, a.Status)
	assert.Equal(t, model.ContactAlways, a.ContactPreference)
	assert.Nil(t, a.Weekends)
}

func TestValidateSchedule_InvertedMorningStillChecksEvening(t *testing.T) {
	a := &model.Availability{
		CommonDays: timings([2]int{9, 0}, [2]int{8, 0}, [2]int{16, 0}, [2]int{18, 0}),
	}

	errs := ValidateSchedule(a)

	require.Len(t, errs, 1)
	assert.Equal(t, CodeStartNotBeforeEnd, errs[0].Code)
	assert.Equal(t, LabelMorning, errs[0].Label)

	a.CommonDays.EveningEnd = model.NewClockTime(13, 0)
	errs = ValidateSchedule(a)
	require.Len(t, errs, 2)
	assert.Equal(t, LabelMorning, errs[0].Label)
	assert.Equal(t, LabelEvening, errs[1].Label)
}

func TestValidateSchedule_WeekendSameAsCommonCopies(t *testing.T) {
	a := &model.Availability{
		CommonDays:           validCommon(),
		IsAvailableOnWeekend: true,
		WeekendSameAsCommon:  true,
		// Stale weekend values that would fail the weekend bounds.
		Weekends: &model.Timings{MorningStart: model.NewClockTime(20, 10)},
	}

	errs := ValidateSchedule(a)

	require.Empty(t, errs)
	require.NotNil(t, a.Weekends)
	assert.Equal(t, a.CommonDays.MorningStart.String(), a.Weekends.MorningStart.String())
	assert.Equal(t, a.CommonDays.MorningEnd.String(), a.Weekends.MorningEnd.String())
	assert.Equal(t, a.CommonDays.EveningStart.String(), a.Weekends.EveningStart.String())
	assert.Equal(t, a.CommonDays.EveningEnd.String(), a.Weekends.EveningEnd.String())
}

func TestValidateSchedule_WeekendSameAsCommonWithInvalidCommonValidatesWeekend(t *testing.T) {
	a := &model.Availability{
		CommonDays:           timings([2]int{9, 0}, [2]int{8, 0}, [2]int{16, 0}, [2]int{18, 0}),
		IsAvailableOnWeekend: true,
		WeekendSameAsCommon:  true,
	}

	errs := ValidateSchedule(a)

	require.Len(t, errs, 2)
	assert.Equal(t, CodeStartNotBeforeEnd, errs[0].Code)
	assert.Equal(t, CodeWeekendRequired, errs[1].Code)
}

func TestValidateSchedule_WeekendInvalidMinutes(t *testing.T) {
	weekend := timings([2]int{9, 0}, [2]int{12, 0}, [2]int{15, 10}, [2]int{18, 0})
	a := &model.Availability{
		CommonDays:           validCommon(),
		IsAvailableOnWeekend: true,
		WeekendSameAsCommon:  false,
		Weekends:             &weekend,
	}

	errs := ValidateSchedule(a)

	require.Len(t, errs, 1)
	assert.Equal(t, CodeInvalidMinutes, errs[0].Code)
	assert.Equal(t, LabelWeekendEvening, errs[0].Label)
}

func TestValidateSchedule_WeekendRequired(t *testing.T) {
	a := &model.Availability{CommonDays: validCommon(), IsAvailableOnWeekend: true}

	errs := ValidateSchedule(a)

	require.Len(t, errs, 1)
	assert.Equal(t, "Weekend timing is required", errs[0].Message)
}

func TestValidateSchedule_WeekendIgnoredWhenDisabled(t *testing.T) {
	bad := timings([2]int{9, 10}, [2]int{8, 0}, [2]int{1, 0}, [2]int{2, 0})
	a := &model.Availability{CommonDays: validCommon(), Weekends: &bad}

	assert.Empty(t, ValidateSchedule(a))
}

func TestValidateSchedule_CurrentOverride(t *testing.T) {
	a := &model.Availability{CommonDays: validCommon(), Kind: model.AvailabilityCurrent}

	errs := ValidateSchedule(a)
	require.Len(t, errs, 2)
	assert.Equal(t, CodeCurrentStartRequired, errs[0].Code)
	assert.Equal(t, CodeCurrentEndRequired, errs[1].Code)

	start := time.Date(2026, time.October, 20, 9, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	a.CurrentStart, a.CurrentEnd = &start, &end
	errs = ValidateSchedule(a)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeStartNotBeforeEnd, errs[0].Code)

	end = start.Add(48 * time.Hour)
	assert.Empty(t, ValidateSchedule(a))
}

func TestValidateSchedule_CollectsAllMessages(t *testing.T) {
	weekend := timings([2]int{13, 0}, [2]int{15, 0}, [2]int{12, 0}, [2]int{18, 0})
	a := &model.Availability{
		CommonDays:           timings([2]int{8, 5}, [2]int{10, 0}, [2]int{16, 0}, [2]int{15, 0}),
		IsAvailableOnWeekend: true,
		Weekends:             &weekend,
	}

	errs := ValidateSchedule(a)

	assert.Equal(t, []string{
		"Invalid Morning Minutes",
		"Evening Start time should not be greater than Evening End Time",
		"Invalid Weekend Morning End Time",
		"Invalid Weekend Evening Start Time",
	}, errs.Messages())
	assert.Error(t, errs.Err())
}

func TestTypeLabel(t *testing.T) {
	assert.Equal(t, "TN-1234_Common", TypeLabel("TN-1234", model.AvailabilityCommon))
	assert.Equal(t, "TN-1234_Current", TypeLabel("TN-1234", model.AvailabilityCurrent))
	assert.Equal(t, "TN-1234_Common", TypeLabel("TN-1234", ""))
}
