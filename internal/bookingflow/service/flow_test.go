package service

import (
	"context"
	"errors"
	"testing"
	"time"

	availability "atelier/internal/availability/service"
	flowerrors "atelier/internal/bookingflow/errors"
	apperrors "atelier/pkg/errors"
	"atelier/pkg/logger"
	"atelier/pkg/model"
	"atelier/pkg/sealer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFetcher struct {
	FetchAvailabilityFunc func(ctx context.Context, studioID string) (*model.StudioAvailability, error)
}

func (m *mockFetcher) FetchAvailability(ctx context.Context, studioID string) (*model.StudioAvailability, error) {
	return m.FetchAvailabilityFunc(ctx, studioID)
}

type mockCatalog struct {
	GetServiceFunc func(ctx context.Context, serviceID string) (*model.ServiceOffering, error)
}

func (m *mockCatalog) GetService(ctx context.Context, serviceID string) (*model.ServiceOffering, error) {
	return m.GetServiceFunc(ctx, serviceID)
}

type mockSubmitter struct {
	submitted []*model.BookingRequestInput
	err       error
}

func (m *mockSubmitter) SubmitRequest(ctx context.Context, input *model.BookingRequestInput) (*model.BookingRequest, error) {
	m.submitted = append(m.submitted, input)
	if m.err != nil {
		return nil, m.err
	}
	return &model.BookingRequest{
		ID:             "65f1a2b3c4d5e6f7a8b9c0ff",
		StudioID:       input.StudioID,
		ServiceID:      input.ServiceID,
		Message:        input.Message,
		PreferredDates: input.PreferredDates,
		Status:         model.RequestStatusPending,
	}, nil
}

type flowFixture struct {
	svc       FlowService
	store     *SessionStore
	submitter *mockSubmitter
}

func newFlowFixture(t *testing.T, fetchErr error) *flowFixture {
	t.Helper()

	store := NewSessionStore(5 * time.Minute)
	t.Cleanup(store.Stop)

	submitter := &mockSubmitter{}
	svc := NewFlowService(FlowServiceParams{
		Store: store,
		Fetcher: &mockFetcher{
			FetchAvailabilityFunc: func(ctx context.Context, studioID string) (*model.StudioAvailability, error) {
				if fetchErr != nil {
					return nil, fetchErr
				}
				return testAvailability(), nil
			},
		},
		Catalog: &mockCatalog{
			GetServiceFunc: func(ctx context.Context, serviceID string) (*model.ServiceOffering, error) {
				if serviceID != testOffering().ID {
					return nil, errors.New("no such service")
				}
				return testOffering(), nil
			},
		},
		Submitter:  submitter,
		Resolver:   availability.NewResolver(30),
		WindowDays: 30,
		Log:        logger.New(logger.Config{Level: "error", Format: logger.FormatText}),
	})

	return &flowFixture{svc: svc, store: store, submitter: submitter}
}

// openToConfirming drives a fresh session to the confirmation step using
// the first selectable date and slot.
func openToConfirming(t *testing.T, f *flowFixture) *View {
	t.Helper()

	view, err := f.svc.Open(context.Background(), "glow-studio", testOffering().ID)
	require.NoError(t, err)
	require.NotEmpty(t, view.SelectableDates)

	// Some open days are too short to hold a slot; pick one that isn't.
	for _, date := range view.SelectableDates {
		view, err = f.svc.SelectDate(view.SessionID, date)
		require.NoError(t, err)
		if len(view.Slots) > 0 {
			break
		}
		view, err = f.svc.Back(view.SessionID)
		require.NoError(t, err)
	}
	require.NotEmpty(t, view.Slots)

	view, err = f.svc.SelectTime(view.SessionID, view.Slots[0])
	require.NoError(t, err)
	require.Equal(t, StateConfirming, view.State)
	return view
}

func TestFlowService_Open(t *testing.T) {
	f := newFlowFixture(t, nil)

	view, err := f.svc.Open(context.Background(), "glow-studio", testOffering().ID)
	require.NoError(t, err)

	assert.Equal(t, StateSelectingDate, view.State)
	assert.Equal(t, "Gel Manicure", view.Service.Name)
	assert.NotEmpty(t, view.SessionID)
	assert.NotEmpty(t, view.SelectableDates)
	assert.Equal(t, 1, f.store.Len())
}

func TestFlowService_OpenUnknownService(t *testing.T) {
	f := newFlowFixture(t, nil)

	_, err := f.svc.Open(context.Background(), "glow-studio", "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(err).Code)
}

func TestFlowService_FetchFailureDegradesSilently(t *testing.T) {
	f := newFlowFixture(t, errors.New("availability service down"))

	view, err := f.svc.Open(context.Background(), "glow-studio", testOffering().ID)
	require.NoError(t, err, "schedule fetch failure must not fail the open")

	assert.Equal(t, StateSelectingDate, view.State)
	assert.Empty(t, view.SelectableDates)

	_, err = f.svc.SelectDate(view.SessionID, "2025-03-03")
	assert.Error(t, err)
}

func TestFlowService_SubmitSuccess(t *testing.T) {
	f := newFlowFixture(t, nil)
	view := openToConfirming(t, f)

	view, err := f.svc.SetNotes(view.SessionID, "see you soon")
	require.NoError(t, err)

	view, err = f.svc.Submit(context.Background(), view.SessionID, ClientIdentity{
		Name:  "Dana",
		Phone: "+14155552671",
	})
	require.NoError(t, err)

	assert.Equal(t, StateSubmitted, view.State)
	assert.NotEmpty(t, view.RequestID)

	require.Len(t, f.submitter.submitted, 1)
	sent := f.submitter.submitted[0]
	assert.Equal(t, "see you soon", sent.Message)
	assert.Equal(t, "Dana", sent.ClientName)
	assert.NotEmpty(t, sent.PreferredDates)
}

func TestFlowService_SubmitAuthFailure(t *testing.T) {
	f := newFlowFixture(t, nil)
	f.submitter.err = flowerrors.ErrUnauthenticated
	view := openToConfirming(t, f)

	view, err := f.svc.Submit(context.Background(), view.SessionID, ClientIdentity{})
	require.NoError(t, err)

	assert.Equal(t, StateConfirming, view.State)
	assert.Equal(t, msgSignIn, view.Error)
	assert.NotEmpty(t, view.SelectedDate, "draft survives the failure")
	assert.NotEmpty(t, view.SelectedTime)
}

func TestFlowService_SubmitGenericFailureThenRetry(t *testing.T) {
	f := newFlowFixture(t, nil)
	f.submitter.err = errors.New("boom")
	view := openToConfirming(t, f)

	view, err := f.svc.Submit(context.Background(), view.SessionID, ClientIdentity{Name: "Dana", Phone: "+14155552671"})
	require.NoError(t, err)
	assert.Equal(t, StateConfirming, view.State)
	assert.Equal(t, msgGeneric, view.Error)

	f.submitter.err = nil
	view, err = f.svc.Submit(context.Background(), view.SessionID, ClientIdentity{Name: "Dana", Phone: "+14155552671"})
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, view.State)
	assert.Len(t, f.submitter.submitted, 2)
}

func TestFlowService_SubmitBeforeConfirmingRejected(t *testing.T) {
	f := newFlowFixture(t, nil)

	view, err := f.svc.Open(context.Background(), "glow-studio", testOffering().ID)
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), view.SessionID, ClientIdentity{})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.AsAppError(err).Code)
	assert.Empty(t, f.submitter.submitted)
}

func TestFlowService_CloseDiscardsAndReopenIsFresh(t *testing.T) {
	f := newFlowFixture(t, nil)
	view := openToConfirming(t, f)

	require.NoError(t, f.svc.Close(view.SessionID))

	_, err := f.svc.Get(view.SessionID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(err).Code)

	reopened, err := f.svc.Open(context.Background(), "glow-studio", testOffering().ID)
	require.NoError(t, err)
	assert.Equal(t, StateSelectingDate, reopened.State)
	assert.Empty(t, reopened.SelectedDate)
	assert.Empty(t, reopened.SelectedTime)
	assert.Empty(t, reopened.Notes)
	assert.NotEqual(t, view.SessionID, reopened.SessionID)
}

func TestFlowService_UnknownSession(t *testing.T) {
	f := newFlowFixture(t, nil)

	_, err := f.svc.SelectDate("ghost", "2025-03-03")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(err).Code)
}

func TestFlowService_OpenFromToken(t *testing.T) {
	f := newFlowFixture(t, nil)

	token, err := sealer.CreateShareToken("glow-studio", testOffering().ID)
	require.NoError(t, err)

	view, err := f.svc.OpenFromToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "glow-studio", view.StudioID)
	assert.Equal(t, testOffering().ID, view.Service.ID)

	_, err = f.svc.OpenFromToken(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
}
