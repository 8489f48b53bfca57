package service

import (
	"fmt"
	"time"

	"atelier/pkg/model"
)

// Resolver answers date and slot questions for a studio's availability.
// It is deliberately forgiving: malformed schedule data yields closed
// days and empty slot lists, never an error.
type Resolver struct {
	strideMin int
}

func NewResolver(strideMin int) *Resolver {
	if strideMin <= 0 {
		strideMin = 30
	}
	return &Resolver{strideMin: strideMin}
}

// IsDateSelectable reports whether date (YYYY-MM-DD) falls on an open
// weekday and outside every time-off block. A date that fails to parse
// is never selectable.
func (r *Resolver) IsDateSelectable(avail *model.StudioAvailability, date string) bool {
	day, err := time.Parse(model.CalendarDateLayout, date)
	if err != nil {
		return false
	}

	hours, ok := model.HoursFor(avail.WeeklyHours, model.ISOWeekday(day))
	if !ok || !hours.Open {
		return false
	}

	// Time-off blocks are inclusive on both ends. Dates in YYYY-MM-DD
	// order lexicographically, so string comparison is enough.
	for _, block := range avail.TimeOff {
		if block.StartDate <= date && date <= block.EndDate {
			return false
		}
	}

	return true
}

// SlotsFor returns the bookable start times for a date, in HH:MM format.
// Slots step by the configured stride from opening time; a slot is kept
// only when the full stride fits before closing. When a lunch break is
// enabled, slots whose start minute falls inside it are dropped -- a
// slot that merely overlaps the break is kept.
func (r *Resolver) SlotsFor(avail *model.StudioAvailability, date string) []string {
	if !r.IsDateSelectable(avail, date) {
		return []string{}
	}

	day, _ := time.Parse(model.CalendarDateLayout, date)
	hours, _ := model.HoursFor(avail.WeeklyHours, model.ISOWeekday(day))

	opens, err := clockToMinutes(hours.OpensAt)
	if err != nil {
		return []string{}
	}
	closes, err := clockToMinutes(hours.ClosesAt)
	if err != nil {
		return []string{}
	}

	lunchStart, lunchEnd := -1, -1
	if avail.LunchBreak.Enabled {
		start, startErr := clockToMinutes(avail.LunchBreak.Start)
		end, endErr := clockToMinutes(avail.LunchBreak.End)
		if startErr == nil && endErr == nil {
			lunchStart, lunchEnd = start, end
		}
	}

	slots := []string{}
	for start := opens; start+r.strideMin <= closes; start += r.strideMin {
		if lunchStart >= 0 && start >= lunchStart && start < lunchEnd {
			continue
		}
		slots = append(slots, minutesToClock(start))
	}

	return slots
}

// SelectableDates returns every selectable date in the booking window,
// starting from the given day.
func (r *Resolver) SelectableDates(avail *model.StudioAvailability, from time.Time, windowDays int) []string {
	dates := []string{}
	for i := 0; i < windowDays; i++ {
		date := from.AddDate(0, 0, i).Format(model.CalendarDateLayout)
		if r.IsDateSelectable(avail, date) {
			dates = append(dates, date)
		}
	}
	return dates
}

func clockToMinutes(clock string) (int, error) {
	t, err := time.Parse(model.ClockLayout, clock)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func minutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
