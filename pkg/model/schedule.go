package model

import "time"

// DayHours describes the operating window for one ISO weekday
// (1=Monday .. 7=Sunday). A weekday with no entry is treated as closed.
type DayHours struct {
	Weekday  int    `json:"weekday" bson:"weekday" validate:"required,min=1,max=7"`
	Open     bool   `json:"open" bson:"open"`
	OpensAt  string `json:"opens_at,omitempty" bson:"opens_at,omitempty" validate:"required_if=Open true,omitempty,clock"`
	ClosesAt string `json:"closes_at,omitempty" bson:"closes_at,omitempty" validate:"required_if=Open true,omitempty,clock"`
}

// LunchBreak is a single studio-wide wall-clock window applied on every
// open day. Slots whose start minute falls inside it are not offered.
type LunchBreak struct {
	Enabled bool   `json:"enabled" bson:"enabled"`
	Start   string `json:"start,omitempty" bson:"start,omitempty" validate:"required_if=Enabled true,omitempty,clock"`
	End     string `json:"end,omitempty" bson:"end,omitempty" validate:"required_if=Enabled true,omitempty,clock"`
}

// TimeOffBlock is an inclusive calendar-date range during which the studio
// is closed regardless of weekday. Blocks may overlap.
type TimeOffBlock struct {
	StartDate string `json:"start_date" bson:"start_date" validate:"required,caldate"`
	EndDate   string `json:"end_date" bson:"end_date" validate:"required,caldate"`
}

type StudioSchedule struct {
	ID          string         `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	StudioID    string         `json:"studio_id" bson:"studio_id" validate:"required,min=2,max=60"`
	WeeklyHours []DayHours     `json:"weekly_hours" bson:"weekly_hours" validate:"required,min=1,max=7,dive"`
	LunchBreak  LunchBreak     `json:"lunch_break" bson:"lunch_break"`
	TimeOff     []TimeOffBlock `json:"time_off,omitempty" bson:"time_off" validate:"omitempty,dive"`
	TimeZone    string         `json:"time_zone,omitempty" bson:"time_zone" validate:"omitempty,timezone"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type StudioScheduleUpdate struct {
	WeeklyHours *[]DayHours     `json:"weekly_hours,omitempty" validate:"omitempty,min=1,max=7,dive"`
	LunchBreak  *LunchBreak     `json:"lunch_break,omitempty"`
	TimeOff     *[]TimeOffBlock `json:"time_off,omitempty" validate:"omitempty,dive"`
	TimeZone    string          `json:"time_zone,omitempty" validate:"omitempty,timezone"`
}

// StudioAvailability is the read model the booking flow consumes: everything
// needed to answer "is this date selectable" and "what slots does it have".
type StudioAvailability struct {
	StudioID    string         `json:"studio_id"`
	WeeklyHours []DayHours     `json:"weekly_hours"`
	TimeOff     []TimeOffBlock `json:"time_off,omitempty"`
	LunchBreak  LunchBreak     `json:"lunch_break"`
}

// ISOWeekday maps a time.Time to the ISO weekday numbering (1=Monday ..
// 7=Sunday). Go's time package numbers Sunday as 0.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// HoursFor returns the entry for the given ISO weekday, if present.
func HoursFor(hours []DayHours, weekday int) (DayHours, bool) {
	for _, h := range hours {
		if h.Weekday == weekday {
			return h, true
		}
	}
	return DayHours{}, false
}

const (
	// CalendarDateLayout is the wire format for calendar dates.
	CalendarDateLayout = "2006-01-02"
	// ClockLayout is the wire format for wall-clock times.
	ClockLayout = "15:04"
)
