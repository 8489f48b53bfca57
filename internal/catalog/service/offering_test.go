package service

import (
	"context"
	"testing"
	"time"

	catalogerrors "atelier/internal/catalog/errors"
	"atelier/internal/catalog/validator"
	"atelier/pkg/config"
	mongotx "atelier/pkg/db/mongo"
	apperrors "atelier/pkg/errors"
	"atelier/pkg/logger"
	"atelier/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type mockOfferingRepository struct {
	createFunc        func(ctx context.Context, offering *model.ServiceOffering) error
	findByIDFunc      func(ctx context.Context, id string) (*model.ServiceOffering, error)
	findByStudioFunc  func(ctx context.Context, studioID string, activeOnly bool, limit int, offset int64) ([]*model.ServiceOffering, error)
	updateFunc        func(ctx context.Context, id string, offering *model.ServiceOffering) (*mongo.UpdateResult, error)
	deleteFunc        func(ctx context.Context, id string) error
	countByStudioFunc func(ctx context.Context, studioID string, activeOnly bool) (int64, error)
}

func (m *mockOfferingRepository) Create(ctx context.Context, offering *model.ServiceOffering) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, offering)
	}
	return nil
}

func (m *mockOfferingRepository) FindByID(ctx context.Context, id string) (*model.ServiceOffering, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, catalogerrors.ErrNotFound
}

func (m *mockOfferingRepository) FindByStudio(ctx context.Context, studioID string, activeOnly bool, limit int, offset int64) ([]*model.ServiceOffering, error) {
	if m.findByStudioFunc != nil {
		return m.findByStudioFunc(ctx, studioID, activeOnly, limit, offset)
	}
	return []*model.ServiceOffering{}, nil
}

func (m *mockOfferingRepository) Update(ctx context.Context, id string, offering *model.ServiceOffering) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, offering)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockOfferingRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockOfferingRepository) CountByStudio(ctx context.Context, studioID string, activeOnly bool) (int64, error) {
	if m.countByStudioFunc != nil {
		return m.countByStudioFunc(ctx, studioID, activeOnly)
	}
	return 0, nil
}

func (m *mockOfferingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
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

func newTestService(repo *mockOfferingRepository, cfg *config.Config) CatalogService {
	return NewCatalogService(repo, validator.NewOfferingValidator(cfg.Log), cfg)
}

func offeringFixture() *model.ServiceOffering {
	return &model.ServiceOffering{
		StudioID:     "studio-123",
		Name:         "Full Sleeve Consultation",
		DurationMin:  60,
		PriceCents:   15000,
		DepositCents: 5000,
		Active:       true,
	}
}

func TestCatalogService_Create(t *testing.T) {
	cfg := testConfig()
	repo := &mockOfferingRepository{
		createFunc: func(ctx context.Context, offering *model.ServiceOffering) error {
			offering.ID = "65f0000000000000000000bb"
			return nil
		},
	}
	svc := newTestService(repo, cfg)

	offering := offeringFixture()
	require.NoError(t, svc.Create(context.Background(), offering))
	assert.NotEmpty(t, offering.ID)
}

func TestCatalogService_Create_DuplicateName(t *testing.T) {
	cfg := testConfig()
	repo := &mockOfferingRepository{
		findByStudioFunc: func(ctx context.Context, studioID string, activeOnly bool, limit int, offset int64) ([]*model.ServiceOffering, error) {
			return []*model.ServiceOffering{{Name: "full sleeve consultation"}}, nil
		},
	}
	svc := newTestService(repo, cfg)

	err := svc.Create(context.Background(), offeringFixture())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.AsAppError(err).Code)
}

func TestCatalogService_Create_DepositExceedsPrice(t *testing.T) {
	cfg := testConfig()
	svc := newTestService(&mockOfferingRepository{}, cfg)

	offering := offeringFixture()
	offering.DepositCents = 20000

	err := svc.Create(context.Background(), offering)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.AsAppError(err).Code)
}

func TestCatalogService_GetByStudio(t *testing.T) {
	cfg := testConfig()
	repo := &mockOfferingRepository{
		findByStudioFunc: func(ctx context.Context, studioID string, activeOnly bool, limit int, offset int64) ([]*model.ServiceOffering, error) {
			assert.True(t, activeOnly)
			return []*model.ServiceOffering{offeringFixture()}, nil
		},
		countByStudioFunc: func(ctx context.Context, studioID string, activeOnly bool) (int64, error) {
			return 1, nil
		},
	}
	svc := newTestService(repo, cfg)

	offerings, count, err := svc.GetByStudio(context.Background(), "studio-123", true, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.Len(t, offerings, 1)
}

func TestCatalogService_Update_Merges(t *testing.T) {
	cfg := testConfig()
	var updated *model.ServiceOffering
	repo := &mockOfferingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.ServiceOffering, error) {
			offering := offeringFixture()
			offering.ID = id
			return offering, nil
		},
		updateFunc: func(ctx context.Context, id string, offering *model.ServiceOffering) (*mongo.UpdateResult, error) {
			updated = offering
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	svc := newTestService(repo, cfg)

	inactive := false
	newPrice := int64(18000)
	err := svc.Update(context.Background(), "65f0000000000000000000bb", &model.ServiceOfferingUpdate{
		PriceCents: &newPrice,
		Active:     &inactive,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.EqualValues(t, 18000, updated.PriceCents)
	assert.False(t, updated.Active)
	// Untouched fields survive.
	assert.Equal(t, "Full Sleeve Consultation", updated.Name)
	assert.Equal(t, 60, updated.DurationMin)
}

func TestCatalogService_GetByID_NotFound(t *testing.T) {
	cfg := testConfig()
	svc := newTestService(&mockOfferingRepository{}, cfg)

	_, err := svc.GetByID(context.Background(), "65f0000000000000000000bb")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(err).Code)
}

func TestCatalogService_Delete_InvalidID(t *testing.T) {
	cfg := testConfig()
	repo := &mockOfferingRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			return catalogerrors.ErrInvalidID
		},
	}
	svc := newTestService(repo, cfg)

	err := svc.Delete(context.Background(), "not-an-object-id")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
}
