package service

import (
	"context"
	"errors"
	"testing"
	"time"

	requesterrors "atelier/internal/requests/errors"
	"atelier/internal/requests/validator"
	"atelier/pkg/config"
	mongotx "atelier/pkg/db/mongo"
	apperrors "atelier/pkg/errors"
	"atelier/pkg/logger"
	"atelier/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type mockRequestRepository struct {
	createFunc       func(ctx context.Context, req *model.BookingRequest) error
	findByIDFunc     func(ctx context.Context, id string) (*model.BookingRequest, error)
	findByStudioFunc func(ctx context.Context, studioID string, status string, limit int, offset int64) ([]*model.BookingRequest, error)
	updateStatusFunc func(ctx context.Context, id string, status string) (*mongo.UpdateResult, error)
	countFunc        func(ctx context.Context, studioID string, status string) (int64, error)
}

func (m *mockRequestRepository) Create(ctx context.Context, req *model.BookingRequest) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil
}

func (m *mockRequestRepository) FindByID(ctx context.Context, id string) (*model.BookingRequest, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, requesterrors.ErrNotFound
}

func (m *mockRequestRepository) FindByStudio(ctx context.Context, studioID string, status string, limit int, offset int64) ([]*model.BookingRequest, error) {
	if m.findByStudioFunc != nil {
		return m.findByStudioFunc(ctx, studioID, status, limit, offset)
	}
	return []*model.BookingRequest{}, nil
}

func (m *mockRequestRepository) UpdateStatus(ctx context.Context, id string, status string) (*mongo.UpdateResult, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockRequestRepository) CountByStudio(ctx context.Context, studioID string, status string) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, studioID, status)
	}
	return 0, nil
}

func (m *mockRequestRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockPublisher struct {
	createdEvents       []*model.BookingRequest
	statusChangedEvents []string
	publishErr          error
}

func (m *mockPublisher) PublishRequestCreated(ctx context.Context, req *model.BookingRequest) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.createdEvents = append(m.createdEvents, req)
	return nil
}

func (m *mockPublisher) PublishStatusChanged(ctx context.Context, req *model.BookingRequest, oldStatus string) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.statusChangedEvents = append(m.statusChangedEvents, oldStatus+"->"+req.Status)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.FormatText,
			Service: "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func newTestService(repo *mockRequestRepository, pub EventPublisher, cfg *config.Config) RequestService {
	return NewRequestService(repo, validator.NewRequestValidator(cfg.Log), pub, cfg)
}

func requestFixture() *model.BookingRequest {
	return &model.BookingRequest{
		StudioID:       "studio-123",
		ServiceID:      "65f0000000000000000000bb",
		ClientName:     "Dana Cohen",
		ClientPhone:    "+12125551234",
		Message:        "Interested in a koi sleeve, flexible on timing.",
		PreferredDates: "Wed, Mar 5 at 9am; Thu, Mar 6 at 1:30pm",
	}
}

func TestRequestService_Create(t *testing.T) {
	cfg := testConfig()
	pub := &mockPublisher{}
	repo := &mockRequestRepository{
		createFunc: func(ctx context.Context, req *model.BookingRequest) error {
			req.ID = "65f0000000000000000000cc"
			return nil
		},
	}
	svc := newTestService(repo, pub, cfg)

	req := requestFixture()
	require.NoError(t, svc.Create(context.Background(), req))
	assert.Equal(t, model.RequestStatusPending, req.Status)
	require.Len(t, pub.createdEvents, 1)
	assert.Equal(t, "65f0000000000000000000cc", pub.createdEvents[0].ID)
}

func TestRequestService_Create_MissingIdentityIsUnauthorized(t *testing.T) {
	cfg := testConfig()
	svc := newTestService(&mockRequestRepository{}, &mockPublisher{}, cfg)

	tests := []struct {
		name   string
		mutate func(*model.BookingRequest)
	}{
		{"no name", func(r *model.BookingRequest) { r.ClientName = "" }},
		{"no phone", func(r *model.BookingRequest) { r.ClientPhone = "" }},
		{"neither", func(r *model.BookingRequest) { r.ClientName = ""; r.ClientPhone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestFixture()
			tt.mutate(req)
			err := svc.Create(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeUnauthorized, apperrors.AsAppError(err).Code)
		})
	}
}

func TestRequestService_Create_InvalidPhone(t *testing.T) {
	cfg := testConfig()
	svc := newTestService(&mockRequestRepository{}, &mockPublisher{}, cfg)

	req := requestFixture()
	req.ClientPhone = "not-a-phone"

	err := svc.Create(context.Background(), req)
	require.Error(t, err)
	// An unparseable phone normalizes to empty, which reads as missing identity.
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.AsAppError(err).Code)
}

func TestRequestService_Create_PublishFailureDoesNotFailSubmission(t *testing.T) {
	cfg := testConfig()
	pub := &mockPublisher{publishErr: errors.New("broker down")}
	repo := &mockRequestRepository{
		createFunc: func(ctx context.Context, req *model.BookingRequest) error {
			req.ID = "65f0000000000000000000cc"
			return nil
		},
	}
	svc := newTestService(repo, pub, cfg)

	assert.NoError(t, svc.Create(context.Background(), requestFixture()))
}

func TestRequestService_Create_RepoFailure(t *testing.T) {
	cfg := testConfig()
	repo := &mockRequestRepository{
		createFunc: func(ctx context.Context, req *model.BookingRequest) error {
			return errors.New("write concern failure")
		},
	}
	svc := newTestService(repo, &mockPublisher{}, cfg)

	err := svc.Create(context.Background(), requestFixture())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInternal, apperrors.AsAppError(err).Code)
}

func TestRequestService_UpdateStatus(t *testing.T) {
	cfg := testConfig()
	pub := &mockPublisher{}
	repo := &mockRequestRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.BookingRequest, error) {
			req := requestFixture()
			req.ID = id
			req.Status = model.RequestStatusPending
			return req, nil
		},
	}
	svc := newTestService(repo, pub, cfg)

	err := svc.UpdateStatus(context.Background(), "65f0000000000000000000cc", &model.BookingRequestUpdate{
		Status: model.RequestStatusContacted,
	})
	require.NoError(t, err)
	require.Len(t, pub.statusChangedEvents, 1)
	assert.Equal(t, "pending->contacted", pub.statusChangedEvents[0])
}

func TestRequestService_UpdateStatus_NoopWhenUnchanged(t *testing.T) {
	cfg := testConfig()
	pub := &mockPublisher{}
	repo := &mockRequestRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.BookingRequest, error) {
			req := requestFixture()
			req.ID = id
			req.Status = model.RequestStatusContacted
			return req, nil
		},
	}
	svc := newTestService(repo, pub, cfg)

	err := svc.UpdateStatus(context.Background(), "65f0000000000000000000cc", &model.BookingRequestUpdate{
		Status: model.RequestStatusContacted,
	})
	require.NoError(t, err)
	assert.Empty(t, pub.statusChangedEvents)
}

func TestRequestService_UpdateStatus_InvalidStatus(t *testing.T) {
	cfg := testConfig()
	svc := newTestService(&mockRequestRepository{}, &mockPublisher{}, cfg)

	err := svc.UpdateStatus(context.Background(), "65f0000000000000000000cc", &model.BookingRequestUpdate{
		Status: "archived",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.AsAppError(err).Code)
}

func TestRequestService_GetByStudio_InvalidStatusFilter(t *testing.T) {
	cfg := testConfig()
	svc := newTestService(&mockRequestRepository{}, &mockPublisher{}, cfg)

	_, _, err := svc.GetByStudio(context.Background(), "studio-123", "bogus", 10, 0)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
}

func TestRequestService_GetByID_NotFound(t *testing.T) {
	cfg := testConfig()
	svc := newTestService(&mockRequestRepository{}, &mockPublisher{}, cfg)

	_, err := svc.GetByID(context.Background(), "65f0000000000000000000cc")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(err).Code)
}
