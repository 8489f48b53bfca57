package service

import (
	"fmt"
	"time"

	"atelier/pkg/model"
)

// DateLabel renders a calendar date for display, e.g. "Wed, Mar 5".
// Input that fails to parse is returned unchanged.
func DateLabel(date string) string {
	day, err := time.Parse(model.CalendarDateLayout, date)
	if err != nil {
		return date
	}
	return day.Format("Mon, Jan 2")
}

// TimeLabel renders a wall-clock time in compact 12-hour form. Minutes
// are dropped on the whole hour: "9am", never "9:00am"; half past nine
// is "9:30am". Input that fails to parse is returned unchanged.
func TimeLabel(clock string) string {
	t, err := time.Parse(model.ClockLayout, clock)
	if err != nil {
		return clock
	}

	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := "am"
	if t.Hour() >= 12 {
		meridiem = "pm"
	}

	if t.Minute() == 0 {
		return fmt.Sprintf("%d%s", hour, meridiem)
	}
	return fmt.Sprintf("%d:%02d%s", hour, t.Minute(), meridiem)
}

// PreferredDatesLabel combines date and time into the human-readable
// label sent with every booking request, e.g. "Wed, Mar 6 at 1:30pm".
func PreferredDatesLabel(date, clock string) string {
	return DateLabel(date) + " at " + TimeLabel(clock)
}
