package service

import (
	"fmt"
	"sync"
	"time"

	availability "atelier/internal/availability/service"
	flowerrors "atelier/internal/bookingflow/errors"
	"atelier/pkg/model"
)

type State string

const (
	StateSelectingDate State = "selecting_date"
	StateSelectingTime State = "selecting_time"
	StateConfirming    State = "confirming"
	StateSubmitting    State = "submitting"
	StateSubmitted     State = "submitted"
)

const (
	msgSignIn  = "Please sign in to send a booking request."
	msgGeneric = "Something went wrong sending your request. Please try again."
)

// Session is one client's walk through date -> time -> confirm -> submit.
// Each session owns its draft exclusively; the mutex only serializes
// concurrent triggers from the same client (double-clicked submit,
// parallel tabs on the same session id).
type Session struct {
	mu sync.Mutex

	ID        string
	StudioID  string
	Offering  *model.ServiceOffering
	CreatedAt time.Time

	// availability stays nil when the schedule fetch failed; every date
	// then reads as unselectable, which is the degraded mode the
	// calendar surface expects.
	availability *model.StudioAvailability
	resolver     *availability.Resolver
	today        string
	windowDays   int

	state        State
	selectedDate string
	selectedTime string
	notes        string
	submitErr    string
	requestID    string

	lastTouched time.Time
}

type sessionParams struct {
	id           string
	studioID     string
	offering     *model.ServiceOffering
	availability *model.StudioAvailability
	resolver     *availability.Resolver
	today        time.Time
	windowDays   int
}

func newSession(p sessionParams) *Session {
	now := time.Now()
	return &Session{
		ID:           p.id,
		StudioID:     p.studioID,
		Offering:     p.offering,
		CreatedAt:    now,
		availability: p.availability,
		resolver:     p.resolver,
		today:        p.today.Format(model.CalendarDateLayout),
		windowDays:   p.windowDays,
		state:        StateSelectingDate,
		lastTouched:  now,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsDateSelectable reports whether the calendar may offer the date.
// Past dates are never selectable; the comparison is at day granularity.
func (s *Session) IsDateSelectable(date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dateSelectable(date)
}

func (s *Session) dateSelectable(date string) bool {
	if s.availability == nil {
		return false
	}
	if date < s.today {
		return false
	}
	return s.resolver.IsDateSelectable(s.availability, date)
}

// SelectableDates lists every selectable date in the booking window.
func (s *Session) SelectableDates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectableDates()
}

func (s *Session) selectableDates() []string {
	if s.availability == nil {
		return []string{}
	}
	from, err := time.Parse(model.CalendarDateLayout, s.today)
	if err != nil {
		return []string{}
	}
	return s.resolver.SelectableDates(s.availability, from, s.windowDays)
}

// SelectDate picks a date and moves to time selection. Any previously
// chosen time is cleared. A date with zero slots is still accepted; the
// time surface shows "no slots" and the only way out is Back.
func (s *Session) SelectDate(date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSelectingDate {
		return fmt.Errorf("%w: select a date from the calendar step", flowerrors.ErrInvalidTransition)
	}
	if !s.dateSelectable(date) {
		return fmt.Errorf("date %s is not available", date)
	}

	s.selectedDate = date
	s.selectedTime = ""
	s.state = StateSelectingTime
	s.lastTouched = time.Now()
	return nil
}

// Slots regenerates the start times for the chosen date. They are not
// cached across date changes.
func (s *Session) Slots() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.availability == nil || s.selectedDate == "" {
		return []string{}
	}
	return s.resolver.SlotsFor(s.availability, s.selectedDate)
}

// SelectTime picks a start time and moves to confirmation.
func (s *Session) SelectTime(clock string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSelectingTime {
		return fmt.Errorf("%w: pick a time after choosing a date", flowerrors.ErrInvalidTransition)
	}

	valid := false
	if s.availability != nil {
		for _, slot := range s.resolver.SlotsFor(s.availability, s.selectedDate) {
			if slot == clock {
				valid = true
				break
			}
		}
	}
	if !valid {
		return fmt.Errorf("time %s is not available on %s", clock, s.selectedDate)
	}

	s.selectedTime = clock
	s.state = StateConfirming
	s.lastTouched = time.Now()
	return nil
}

// SetNotes attaches free-text notes to the draft on the confirmation step.
func (s *Session) SetNotes(notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateConfirming {
		return fmt.Errorf("%w: notes belong to the confirmation step", flowerrors.ErrInvalidTransition)
	}
	s.notes = notes
	s.lastTouched = time.Now()
	return nil
}

// Back walks one step towards the calendar. Leaving time selection or
// confirmation discards the chosen time; the chosen date survives a
// confirmation back-step so the same day is re-shown.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateSelectingTime:
		s.selectedTime = ""
		s.selectedDate = ""
		s.state = StateSelectingDate
	case StateConfirming:
		s.selectedTime = ""
		s.state = StateSelectingTime
	default:
		return fmt.Errorf("%w: nothing to go back to", flowerrors.ErrInvalidTransition)
	}
	s.lastTouched = time.Now()
	return nil
}

// submission is the snapshot handed to the external submitter.
type submission struct {
	ServiceID      string
	Message        string
	PreferredDates string
}

// beginSubmit flips the in-flight flag and returns the draft snapshot.
// A submit while one is already outstanding is a no-op, signalled by
// inFlight; this flag is the workflow's sole concurrency safeguard.
func (s *Session) beginSubmit() (sub submission, inFlight bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateSubmitting:
		return submission{}, true, nil
	case StateConfirming:
	default:
		return submission{}, false, fmt.Errorf("%w: confirm the booking before submitting", flowerrors.ErrInvalidTransition)
	}

	s.state = StateSubmitting
	s.submitErr = ""
	s.lastTouched = time.Now()

	label := PreferredDatesLabel(s.selectedDate, s.selectedTime)
	message := s.notes
	if message == "" {
		message = fmt.Sprintf("Hi! I'd like to book %s on %s.", s.Offering.Name, label)
	}

	return submission{
		ServiceID:      s.Offering.ID,
		Message:        message,
		PreferredDates: label,
	}, false, nil
}

// finishSubmit resolves the outstanding submission. Success reaches the
// terminal state; failure returns to confirmation with a message attached
// and the draft intact so the client can retry without re-entering data.
func (s *Session) finishSubmit(requestID string, failure string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSubmitting {
		// Session was closed mid-flight; the result lands in a discarded
		// instance and is dropped.
		return
	}

	if failure != "" {
		s.submitErr = failure
		s.state = StateConfirming
		return
	}

	s.requestID = requestID
	s.notes = ""
	s.submitErr = ""
	s.state = StateSubmitted
}

// View is the wire snapshot of a session.
type View struct {
	SessionID       string                 `json:"session_id"`
	State           State                  `json:"state"`
	StudioID        string                 `json:"studio_id"`
	Service         *model.ServiceOffering `json:"service"`
	SelectableDates []string               `json:"selectable_dates"`
	SelectedDate    string                 `json:"selected_date,omitempty"`
	DateLabel       string                 `json:"date_label,omitempty"`
	Slots           []string               `json:"slots,omitempty"`
	SelectedTime    string                 `json:"selected_time,omitempty"`
	TimeLabel       string                 `json:"time_label,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	Error           string                 `json:"error,omitempty"`
	RequestID       string                 `json:"request_id,omitempty"`
}

func (s *Session) Snapshot() *View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := &View{
		SessionID:       s.ID,
		State:           s.state,
		StudioID:        s.StudioID,
		Service:         s.Offering,
		SelectableDates: s.selectableDates(),
		SelectedDate:    s.selectedDate,
		SelectedTime:    s.selectedTime,
		Notes:           s.notes,
		Error:           s.submitErr,
		RequestID:       s.requestID,
	}
	if s.selectedDate != "" {
		view.DateLabel = DateLabel(s.selectedDate)
		if s.availability != nil {
			view.Slots = s.resolver.SlotsFor(s.availability, s.selectedDate)
		} else {
			view.Slots = []string{}
		}
	}
	if s.selectedTime != "" {
		view.TimeLabel = TimeLabel(s.selectedTime)
	}
	return view
}

func (s *Session) expired(ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastTouched) > ttl
}
