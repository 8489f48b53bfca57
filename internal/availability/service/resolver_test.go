package service

import (
	"testing"
	"time"

	"atelier/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekAvailability() *model.StudioAvailability {
	return &model.StudioAvailability{
		StudioID: "studio-123",
		WeeklyHours: []model.DayHours{
			{Weekday: 1, Open: true, OpensAt: "09:00", ClosesAt: "17:00"},
			{Weekday: 2, Open: true, OpensAt: "09:00", ClosesAt: "17:00"},
			{Weekday: 3, Open: true, OpensAt: "09:00", ClosesAt: "17:00"},
			{Weekday: 4, Open: false},
			{Weekday: 5, Open: true, OpensAt: "10:00", ClosesAt: "14:00"},
		},
		LunchBreak: model.LunchBreak{Enabled: true, Start: "12:00", End: "13:00"},
	}
}

func TestResolver_IsDateSelectable(t *testing.T) {
	r := NewResolver(30)
	avail := weekAvailability()
	avail.TimeOff = []model.TimeOffBlock{
		{StartDate: "2025-03-10", EndDate: "2025-03-12"},
	}

	tests := []struct {
		name string
		date string
		want bool
	}{
		// 2025-03-03 is a Monday.
		{"open weekday", "2025-03-03", true},
		{"closed weekday", "2025-03-06", false},
		{"weekday with no entry", "2025-03-08", false},
		{"sunday with no entry", "2025-03-09", false},
		{"time off first day", "2025-03-10", false},
		{"time off middle day", "2025-03-11", false},
		{"time off last day", "2025-03-12", false},
		{"day before time off", "2025-03-07", true},
		{"day after time off", "2025-03-13", false}, // Thursday, closed
		{"open day after time off", "2025-03-14", true},
		{"malformed date", "03/10/2025", false},
		{"empty date", "", false},
		{"nonsense date", "not-a-date", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.IsDateSelectable(avail, tt.date))
		})
	}
}

func TestResolver_IsDateSelectable_SundayMapsToSeven(t *testing.T) {
	r := NewResolver(30)
	avail := &model.StudioAvailability{
		WeeklyHours: []model.DayHours{
			{Weekday: 7, Open: true, OpensAt: "10:00", ClosesAt: "14:00"},
		},
	}

	// 2025-03-09 is a Sunday.
	assert.True(t, r.IsDateSelectable(avail, "2025-03-09"))
	// Monday has no entry.
	assert.False(t, r.IsDateSelectable(avail, "2025-03-10"))
}

func TestResolver_SlotsFor_FullDayWithLunch(t *testing.T) {
	r := NewResolver(30)
	avail := weekAvailability()

	slots := r.SlotsFor(avail, "2025-03-03")

	want := []string{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30",
		"16:00", "16:30",
	}
	assert.Equal(t, want, slots)
	assert.Len(t, slots, 14)
}

func TestResolver_SlotsFor_LunchExcludesStartMinuteOnly(t *testing.T) {
	r := NewResolver(30)
	avail := weekAvailability()

	slots := r.SlotsFor(avail, "2025-03-03")

	// 11:30 overlaps the break but starts before it, so it stays.
	assert.Contains(t, slots, "11:30")
	// Slots starting inside the break are dropped, the end minute is not.
	assert.NotContains(t, slots, "12:00")
	assert.NotContains(t, slots, "12:30")
	assert.Contains(t, slots, "13:00")
}

func TestResolver_SlotsFor_ClosingTimeExcluded(t *testing.T) {
	r := NewResolver(30)
	avail := weekAvailability()

	slots := r.SlotsFor(avail, "2025-03-03")
	assert.NotContains(t, slots, "17:00")
	assert.Equal(t, "16:30", slots[len(slots)-1])
}

func TestResolver_SlotsFor_WindowTooShortForStride(t *testing.T) {
	r := NewResolver(30)
	avail := &model.StudioAvailability{
		WeeklyHours: []model.DayHours{
			{Weekday: 1, Open: true, OpensAt: "09:00", ClosesAt: "09:15"},
		},
	}

	assert.Empty(t, r.SlotsFor(avail, "2025-03-03"))
}

func TestResolver_SlotsFor_UnselectableDateIsEmpty(t *testing.T) {
	r := NewResolver(30)
	avail := weekAvailability()

	assert.Empty(t, r.SlotsFor(avail, "2025-03-06")) // closed Thursday
	assert.Empty(t, r.SlotsFor(avail, "garbage"))
}

func TestResolver_SlotsFor_MalformedHoursDegradeToEmpty(t *testing.T) {
	r := NewResolver(30)
	avail := &model.StudioAvailability{
		WeeklyHours: []model.DayHours{
			{Weekday: 1, Open: true, OpensAt: "late", ClosesAt: "17:00"},
		},
	}

	assert.Empty(t, r.SlotsFor(avail, "2025-03-03"))
}

func TestResolver_SlotsFor_MalformedLunchIsIgnored(t *testing.T) {
	r := NewResolver(30)
	avail := weekAvailability()
	avail.LunchBreak = model.LunchBreak{Enabled: true, Start: "noonish", End: "13:00"}

	slots := r.SlotsFor(avail, "2025-03-03")
	assert.Len(t, slots, 16)
	assert.Contains(t, slots, "12:00")
}

func TestResolver_SlotsFor_NoLunch(t *testing.T) {
	r := NewResolver(30)
	avail := weekAvailability()
	avail.LunchBreak = model.LunchBreak{}

	slots := r.SlotsFor(avail, "2025-03-07") // Friday 10:00-14:00
	want := []string{"10:00", "10:30", "11:00", "11:30", "12:00", "12:30", "13:00", "13:30"}
	assert.Equal(t, want, slots)
}

func TestResolver_SelectableDates(t *testing.T) {
	r := NewResolver(30)
	avail := weekAvailability()
	avail.TimeOff = []model.TimeOffBlock{
		{StartDate: "2025-03-04", EndDate: "2025-03-04"},
	}

	// Monday 2025-03-03 through Sunday 2025-03-09.
	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	dates := r.SelectableDates(avail, from, 7)

	want := []string{"2025-03-03", "2025-03-05", "2025-03-07"}
	assert.Equal(t, want, dates)
}

func TestResolver_SelectableDates_EmptyWindow(t *testing.T) {
	r := NewResolver(30)
	avail := weekAvailability()

	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, r.SelectableDates(avail, from, 0))
}

func TestResolver_DefaultStride(t *testing.T) {
	r := NewResolver(0)
	require.Equal(t, 30, r.strideMin)
}
