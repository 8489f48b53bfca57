package validator

import (
	"testing"

	"atelier/pkg/logger"
	"atelier/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.FormatText, Service: "test"})
}

func validSchedule() *model.StudioSchedule {
	return &model.StudioSchedule{
		StudioID: "studio-123",
		WeeklyHours: []model.DayHours{
			{Weekday: 1, Open: true, OpensAt: "09:00", ClosesAt: "17:00"},
			{Weekday: 2, Open: true, OpensAt: "09:00", ClosesAt: "17:00"},
			{Weekday: 6, Open: false},
		},
		LunchBreak: model.LunchBreak{Enabled: true, Start: "12:00", End: "13:00"},
		TimeOff: []model.TimeOffBlock{
			{StartDate: "2025-03-10", EndDate: "2025-03-14"},
		},
		TimeZone: "America/New_York",
	}
}

func TestScheduleValidator_Valid(t *testing.T) {
	v := NewScheduleValidator(testLogger())
	require.NoError(t, v.Validate(validSchedule()))
}

func TestScheduleValidator_ClockFormat(t *testing.T) {
	v := NewScheduleValidator(testLogger())

	tests := []struct {
		name    string
		opensAt string
		wantErr bool
	}{
		{"valid", "09:30", false},
		{"missing leading zero", "9:30", true},
		{"out of range hour", "25:00", true},
		{"out of range minute", "09:60", true},
		{"not a time", "morning", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := validSchedule()
			sc.WeeklyHours[0].OpensAt = tt.opensAt
			err := v.Validate(sc)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScheduleValidator_CalendarDateFormat(t *testing.T) {
	v := NewScheduleValidator(testLogger())

	sc := validSchedule()
	sc.TimeOff[0].StartDate = "03/10/2025"
	assert.Error(t, v.Validate(sc))
}

func TestScheduleValidator_OpenBeforeClose(t *testing.T) {
	v := NewScheduleValidator(testLogger())

	sc := validSchedule()
	sc.WeeklyHours[0].OpensAt = "17:00"
	sc.WeeklyHours[0].ClosesAt = "09:00"
	err := v.Validate(sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closes_at must be after opens_at")
}

func TestScheduleValidator_DuplicateWeekday(t *testing.T) {
	v := NewScheduleValidator(testLogger())

	sc := validSchedule()
	sc.WeeklyHours = append(sc.WeeklyHours, model.DayHours{Weekday: 1, Open: true, OpensAt: "10:00", ClosesAt: "16:00"})
	err := v.Validate(sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate entry for weekday 1")
}

func TestScheduleValidator_LunchOrdering(t *testing.T) {
	v := NewScheduleValidator(testLogger())

	sc := validSchedule()
	sc.LunchBreak = model.LunchBreak{Enabled: true, Start: "13:00", End: "12:00"}
	err := v.Validate(sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lunch break end must be after start")
}

func TestScheduleValidator_TimeOffOrdering(t *testing.T) {
	v := NewScheduleValidator(testLogger())

	sc := validSchedule()
	sc.TimeOff = []model.TimeOffBlock{{StartDate: "2025-03-14", EndDate: "2025-03-10"}}
	err := v.Validate(sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end_date must not be before start_date")
}

func TestScheduleValidator_SingleDayTimeOff(t *testing.T) {
	v := NewScheduleValidator(testLogger())

	sc := validSchedule()
	sc.TimeOff = []model.TimeOffBlock{{StartDate: "2025-03-10", EndDate: "2025-03-10"}}
	assert.NoError(t, v.Validate(sc))
}

func TestScheduleValidator_ClosedDayNeedsNoHours(t *testing.T) {
	v := NewScheduleValidator(testLogger())

	sc := validSchedule()
	sc.WeeklyHours = []model.DayHours{{Weekday: 7, Open: false}}
	assert.NoError(t, v.Validate(sc))
}
