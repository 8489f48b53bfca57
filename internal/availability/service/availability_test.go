package service

import (
	"context"
	"testing"
	"time"

	availerrors "atelier/internal/availability/errors"
	"atelier/internal/availability/validator"
	"atelier/pkg/config"
	mongotx "atelier/pkg/db/mongo"
	apperrors "atelier/pkg/errors"
	"atelier/pkg/logger"
	"atelier/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type mockScheduleRepository struct {
	createFunc         func(ctx context.Context, sc *model.StudioSchedule) error
	findByIDFunc       func(ctx context.Context, id string) (*model.StudioSchedule, error)
	findByStudioIDFunc func(ctx context.Context, studioID string) (*model.StudioSchedule, error)
	findAllFunc        func(ctx context.Context, limit int, offset int64) ([]*model.StudioSchedule, error)
	updateFunc         func(ctx context.Context, id string, sc *model.StudioSchedule) (*mongo.UpdateResult, error)
	deleteFunc         func(ctx context.Context, id string) error
	countFunc          func(ctx context.Context) (int64, error)
}

func (m *mockScheduleRepository) Create(ctx context.Context, sc *model.StudioSchedule) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, sc)
	}
	return nil
}

func (m *mockScheduleRepository) FindByID(ctx context.Context, id string) (*model.StudioSchedule, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, availerrors.ErrNotFound
}

func (m *mockScheduleRepository) FindByStudioID(ctx context.Context, studioID string) (*model.StudioSchedule, error) {
	if m.findByStudioIDFunc != nil {
		return m.findByStudioIDFunc(ctx, studioID)
	}
	return nil, availerrors.ErrNotFound
}

func (m *mockScheduleRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.StudioSchedule, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.StudioSchedule{}, nil
}

func (m *mockScheduleRepository) Update(ctx context.Context, id string, sc *model.StudioSchedule) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, sc)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockScheduleRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockScheduleRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

// Transactions run the callback directly in tests; no session semantics.
func (m *mockScheduleRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.FormatText,
			Service: "test",
		}),
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		SlotStrideMin:     30,
		BookingWindowDays: 14,
		DefaultOpensAt:    "10:00",
		DefaultClosesAt:   "18:00",
	}
}

func newTestService(repo *mockScheduleRepository, cfg *config.Config) AvailabilityService {
	return NewAvailabilityService(repo, validator.NewScheduleValidator(cfg.Log), cfg)
}

func scheduleFixture() *model.StudioSchedule {
	return &model.StudioSchedule{
		StudioID: "studio-123",
		WeeklyHours: []model.DayHours{
			{Weekday: 1, Open: true, OpensAt: "09:00", ClosesAt: "17:00"},
			{Weekday: 2, Open: true, OpensAt: "09:00", ClosesAt: "17:00"},
		},
		LunchBreak: model.LunchBreak{Enabled: true, Start: "12:00", End: "13:00"},
	}
}

func TestAvailabilityService_Create(t *testing.T) {
	cfg := testConfig()
	created := false
	repo := &mockScheduleRepository{
		createFunc: func(ctx context.Context, sc *model.StudioSchedule) error {
			created = true
			sc.ID = "65f0000000000000000000aa"
			return nil
		},
	}
	svc := newTestService(repo, cfg)

	sc := scheduleFixture()
	require.NoError(t, svc.Create(context.Background(), sc))
	assert.True(t, created)
	assert.NotEmpty(t, sc.ID)
}

func TestAvailabilityService_Create_ConflictWhenStudioHasSchedule(t *testing.T) {
	cfg := testConfig()
	repo := &mockScheduleRepository{
		findByStudioIDFunc: func(ctx context.Context, studioID string) (*model.StudioSchedule, error) {
			return scheduleFixture(), nil
		},
	}
	svc := newTestService(repo, cfg)

	err := svc.Create(context.Background(), scheduleFixture())
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestAvailabilityService_Create_ValidationFailure(t *testing.T) {
	cfg := testConfig()
	svc := newTestService(&mockScheduleRepository{}, cfg)

	sc := scheduleFixture()
	sc.WeeklyHours[0].OpensAt = "17:00"
	sc.WeeklyHours[0].ClosesAt = "09:00"

	err := svc.Create(context.Background(), sc)
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestAvailabilityService_Create_AppliesRegionalDefaults(t *testing.T) {
	cfg := testConfig()
	var stored *model.StudioSchedule
	repo := &mockScheduleRepository{
		createFunc: func(ctx context.Context, sc *model.StudioSchedule) error {
			stored = sc
			return nil
		},
	}
	svc := newTestService(repo, cfg)

	sc := &model.StudioSchedule{StudioID: "studio-123", TimeZone: "Asia/Jerusalem"}
	require.NoError(t, svc.Create(context.Background(), sc))
	require.NotNil(t, stored)

	weekdays := make([]int, 0, len(stored.WeeklyHours))
	for _, day := range stored.WeeklyHours {
		weekdays = append(weekdays, day.Weekday)
		assert.True(t, day.Open)
		assert.Equal(t, "10:00", day.OpensAt)
		assert.Equal(t, "18:00", day.ClosesAt)
	}
	assert.Equal(t, config.DefaultOpenWeekdaysIL, weekdays)
}

func TestAvailabilityService_GetByStudio_NotFound(t *testing.T) {
	cfg := testConfig()
	svc := newTestService(&mockScheduleRepository{}, cfg)

	_, err := svc.GetByStudio(context.Background(), "studio-404")
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestAvailabilityService_AvailabilityFor(t *testing.T) {
	cfg := testConfig()
	repo := &mockScheduleRepository{
		findByStudioIDFunc: func(ctx context.Context, studioID string) (*model.StudioSchedule, error) {
			sc := scheduleFixture()
			sc.TimeOff = []model.TimeOffBlock{{StartDate: "2025-03-10", EndDate: "2025-03-11"}}
			return sc, nil
		},
	}
	svc := newTestService(repo, cfg)

	avail, err := svc.AvailabilityFor(context.Background(), "studio-123")
	require.NoError(t, err)
	assert.Equal(t, "studio-123", avail.StudioID)
	assert.Len(t, avail.WeeklyHours, 2)
	assert.Len(t, avail.TimeOff, 1)
	assert.True(t, avail.LunchBreak.Enabled)
}

func TestAvailabilityService_SlotsFor(t *testing.T) {
	cfg := testConfig()
	repo := &mockScheduleRepository{
		findByStudioIDFunc: func(ctx context.Context, studioID string) (*model.StudioSchedule, error) {
			return scheduleFixture(), nil
		},
	}
	svc := newTestService(repo, cfg)

	// 2025-03-03 is a Monday.
	slots, err := svc.SlotsFor(context.Background(), "studio-123", "2025-03-03")
	require.NoError(t, err)
	assert.Len(t, slots, 14)

	_, err = svc.SlotsFor(context.Background(), "studio-123", "bad-date")
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeInvalidInput, appErr.Code)
}

func TestAvailabilityService_SelectableDates(t *testing.T) {
	cfg := testConfig()
	cfg.BookingWindowDays = 7
	repo := &mockScheduleRepository{
		findByStudioIDFunc: func(ctx context.Context, studioID string) (*model.StudioSchedule, error) {
			return scheduleFixture(), nil
		},
	}
	svc := newTestService(repo, cfg)

	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	dates, err := svc.SelectableDates(context.Background(), "studio-123", from)
	require.NoError(t, err)
	// Only Monday and Tuesday are open in the fixture.
	assert.Equal(t, []string{"2025-03-03", "2025-03-04"}, dates)
}

func TestAvailabilityService_Update_MergesChanges(t *testing.T) {
	cfg := testConfig()
	var updated *model.StudioSchedule
	repo := &mockScheduleRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.StudioSchedule, error) {
			sc := scheduleFixture()
			sc.ID = id
			return sc, nil
		},
		updateFunc: func(ctx context.Context, id string, sc *model.StudioSchedule) (*mongo.UpdateResult, error) {
			updated = sc
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	svc := newTestService(repo, cfg)

	newHours := []model.DayHours{{Weekday: 5, Open: true, OpensAt: "08:00", ClosesAt: "12:00"}}
	err := svc.Update(context.Background(), "65f0000000000000000000aa", &model.StudioScheduleUpdate{
		WeeklyHours: &newHours,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, newHours, updated.WeeklyHours)
	// Untouched fields survive the merge.
	assert.True(t, updated.LunchBreak.Enabled)
	assert.Equal(t, "studio-123", updated.StudioID)
}

func TestAvailabilityService_Delete_NotFound(t *testing.T) {
	cfg := testConfig()
	repo := &mockScheduleRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			return availerrors.ErrNotFound
		},
	}
	svc := newTestService(repo, cfg)

	err := svc.Delete(context.Background(), "65f0000000000000000000aa")
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestAvailabilityService_GetAll(t *testing.T) {
	cfg := testConfig()
	repo := &mockScheduleRepository{
		countFunc: func(ctx context.Context) (int64, error) { return 3, nil },
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.StudioSchedule, error) {
			return []*model.StudioSchedule{scheduleFixture()}, nil
		},
	}
	svc := newTestService(repo, cfg)

	schedules, count, err := svc.GetAll(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	assert.Len(t, schedules, 1)
}
