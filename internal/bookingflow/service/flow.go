package service

import (
	"context"
	"errors"
	"time"

	availability "atelier/internal/availability/service"
	flowerrors "atelier/internal/bookingflow/errors"
	apperrors "atelier/pkg/errors"
	"atelier/pkg/logger"
	"atelier/pkg/model"
	"atelier/pkg/sanitizer"
	"atelier/pkg/sealer"

	"github.com/google/uuid"
)

// ClientIdentity is who is submitting. It rides on the submit request,
// not on the draft; the requests service rejects submissions without it.
type ClientIdentity struct {
	Name  string `json:"client_name,omitempty"`
	Phone string `json:"client_phone,omitempty"`
}

type FlowService interface {
	Open(ctx context.Context, studioID, serviceID string) (*View, error)
	OpenFromToken(ctx context.Context, token string) (*View, error)
	Get(sessionID string) (*View, error)
	SelectDate(sessionID, date string) (*View, error)
	SelectTime(sessionID, clock string) (*View, error)
	SetNotes(sessionID, notes string) (*View, error)
	Back(sessionID string) (*View, error)
	Submit(ctx context.Context, sessionID string, identity ClientIdentity) (*View, error)
	Close(sessionID string) error
}

type flowService struct {
	store      *SessionStore
	fetcher    AvailabilityFetcher
	catalog    CatalogReader
	submitter  RequestSubmitter
	resolver   *availability.Resolver
	windowDays int
	log        *logger.Logger
}

type FlowServiceParams struct {
	Store      *SessionStore
	Fetcher    AvailabilityFetcher
	Catalog    CatalogReader
	Submitter  RequestSubmitter
	Resolver   *availability.Resolver
	WindowDays int
	Log        *logger.Logger
}

func NewFlowService(p FlowServiceParams) FlowService {
	return &flowService{
		store:      p.Store,
		fetcher:    p.Fetcher,
		catalog:    p.Catalog,
		submitter:  p.Submitter,
		resolver:   p.Resolver,
		windowDays: p.WindowDays,
		log:        p.Log,
	}
}

// Open starts a fresh session: resolve the service, fetch the studio's
// schedule, hand back a calendar-ready snapshot. A failed schedule fetch
// is not an error; the session opens with nothing selectable.
func (s *flowService) Open(ctx context.Context, studioID, serviceID string) (*View, error) {
	studioID = sanitizer.NormalizeStudioID(studioID)
	if studioID == "" || serviceID == "" {
		return nil, apperrors.InvalidInput("studio_id and service_id are required")
	}

	offering, err := s.catalog.GetService(ctx, serviceID)
	if err != nil {
		s.log.Warn("Service lookup failed", "service_id", serviceID, "error", err)
		return nil, apperrors.NotFoundWithID("Service", serviceID)
	}

	avail, err := s.fetcher.FetchAvailability(ctx, studioID)
	if err != nil {
		s.log.Warn("Schedule fetch failed, opening session with empty availability",
			"studio_id", studioID,
			"error", err,
		)
		avail = nil
	}

	session := newSession(sessionParams{
		id:           uuid.NewString(),
		studioID:     studioID,
		offering:     offering,
		availability: avail,
		resolver:     s.resolver,
		today:        time.Now(),
		windowDays:   s.windowDays,
	})
	s.store.Put(session)

	s.log.Info("Booking session opened",
		"session_id", session.ID,
		"studio_id", studioID,
		"service_id", serviceID,
	)
	return session.Snapshot(), nil
}

// OpenFromToken unseals a storefront deep-link token into its studio and
// service pair and opens a session for them.
func (s *flowService) OpenFromToken(ctx context.Context, token string) (*View, error) {
	studioID, serviceID, err := sealer.ParseShareToken(token)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid booking link")
	}
	return s.Open(ctx, studioID, serviceID)
}

func (s *flowService) Get(sessionID string) (*View, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return session.Snapshot(), nil
}

func (s *flowService) SelectDate(sessionID, date string) (*View, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.SelectDate(date); err != nil {
		return nil, mapTransitionError(err)
	}
	return session.Snapshot(), nil
}

func (s *flowService) SelectTime(sessionID, clock string) (*View, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.SelectTime(clock); err != nil {
		return nil, mapTransitionError(err)
	}
	return session.Snapshot(), nil
}

func (s *flowService) SetNotes(sessionID, notes string) (*View, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.SetNotes(sanitizer.NormalizeNotes(notes)); err != nil {
		return nil, mapTransitionError(err)
	}
	return session.Snapshot(), nil
}

func (s *flowService) Back(sessionID string) (*View, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Back(); err != nil {
		return nil, mapTransitionError(err)
	}
	return session.Snapshot(), nil
}

// Submit issues exactly one create-request call for the confirmed draft.
// A submit while one is outstanding is a no-op that returns the current
// snapshot. Failures land back on the confirmation step with a message
// attached; the draft survives for retry.
func (s *flowService) Submit(ctx context.Context, sessionID string, identity ClientIdentity) (*View, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sub, inFlight, err := session.beginSubmit()
	if err != nil {
		return nil, mapTransitionError(err)
	}
	if inFlight {
		return session.Snapshot(), nil
	}

	created, submitErr := s.submitter.SubmitRequest(ctx, &model.BookingRequestInput{
		StudioID:       session.StudioID,
		ServiceID:      sub.ServiceID,
		ClientName:     identity.Name,
		ClientPhone:    identity.Phone,
		Message:        sub.Message,
		PreferredDates: sub.PreferredDates,
	})

	switch {
	case submitErr == nil:
		session.finishSubmit(created.ID, "")
		s.log.Info("Booking request submitted",
			"session_id", session.ID,
			"request_id", created.ID,
		)
	case errors.Is(submitErr, flowerrors.ErrUnauthenticated):
		session.finishSubmit("", msgSignIn)
	default:
		s.log.Error("Booking request submission failed",
			"session_id", session.ID,
			"error", submitErr,
		)
		session.finishSubmit("", msgGeneric)
	}

	return session.Snapshot(), nil
}

// Close discards the session. Reopening always starts a fresh
// SelectingDate instance with an empty draft.
func (s *flowService) Close(sessionID string) error {
	if _, err := s.session(sessionID); err != nil {
		return err
	}
	s.store.Delete(sessionID)
	return nil
}

func (s *flowService) session(sessionID string) (*Session, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, apperrors.NotFoundWithID("Booking session", sessionID)
	}
	return session, nil
}

func mapTransitionError(err error) error {
	if errors.Is(err, flowerrors.ErrInvalidTransition) {
		return apperrors.Conflict(err.Error())
	}
	return apperrors.InvalidInput(err.Error())
}
