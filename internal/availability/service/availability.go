package service

import (
	"context"
	"errors"
	"sync"
	"time"

	availerrors "atelier/internal/availability/errors"
	"atelier/internal/availability/repository"
	"atelier/internal/availability/validator"
	"atelier/pkg/config"
	apperrors "atelier/pkg/errors"
	"atelier/pkg/locale"
	"atelier/pkg/model"
	"atelier/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type AvailabilityService interface {
	Create(ctx context.Context, sc *model.StudioSchedule) error
	GetByID(ctx context.Context, id string) (*model.StudioSchedule, error)
	GetByStudio(ctx context.Context, studioID string) (*model.StudioSchedule, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.StudioSchedule, int64, error)
	Update(ctx context.Context, id string, updates *model.StudioScheduleUpdate) error
	Delete(ctx context.Context, id string) error

	AvailabilityFor(ctx context.Context, studioID string) (*model.StudioAvailability, error)
	SelectableDates(ctx context.Context, studioID string, from time.Time) ([]string, error)
	SlotsFor(ctx context.Context, studioID string, date string) ([]string, error)
}

type availabilityService struct {
	repo      repository.ScheduleRepository
	validator *validator.ScheduleValidator
	resolver  *Resolver
	cfg       *config.Config
}

func NewAvailabilityService(
	repo repository.ScheduleRepository,
	validator *validator.ScheduleValidator,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		repo:      repo,
		validator: validator,
		resolver:  NewResolver(cfg.SlotStrideMin),
		cfg:       cfg,
	}
}

func (s *availabilityService) Create(ctx context.Context, sc *model.StudioSchedule) error {
	s.sanitize(sc)
	s.applyDefaults(sc)

	if err := s.validator.Validate(sc); err != nil {
		s.cfg.Log.Warn("Schedule validation failed",
			"studio_id", sc.StudioID,
			"error", err,
		)
		return apperrors.Validation("Schedule validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByStudioID(sessCtx, sc.StudioID)
		if err != nil && !errors.Is(err, availerrors.ErrNotFound) {
			return apperrors.Internal("Failed to check for existing schedule", err)
		}
		if existing != nil {
			return apperrors.Conflict("A schedule already exists for this studio")
		}
		return s.repo.Create(sessCtx, sc)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create schedule",
			"studio_id", sc.StudioID,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Schedule created successfully",
		"id", sc.ID,
		"studio_id", sc.StudioID,
	)
	return nil
}

func (s *availabilityService) GetByID(ctx context.Context, id string) (*model.StudioSchedule, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Schedule ID cannot be empty")
	}

	sc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}
	return sc, nil
}

func (s *availabilityService) GetByStudio(ctx context.Context, studioID string) (*model.StudioSchedule, error) {
	studioID = sanitizer.NormalizeStudioID(studioID)
	if studioID == "" {
		return nil, apperrors.InvalidInput("Studio ID cannot be empty")
	}

	sc, err := s.repo.FindByStudioID(ctx, studioID)
	if err != nil {
		if errors.Is(err, availerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Schedule for studio", studioID)
		}
		s.cfg.Log.Error("Failed to get schedule for studio",
			"studio_id", studioID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve schedule", err)
	}
	return sc, nil
}

func (s *availabilityService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.StudioSchedule, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var schedules []*model.StudioSchedule
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(sharedCtx)
		if err != nil {
			s.cfg.Log.Error("Failed to count schedules", "error", err)
			errCount = apperrors.Internal("Failed to count schedules", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		schedules, err = s.repo.FindAll(sharedCtx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all schedules",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve schedules", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return schedules, count, nil
}

func (s *availabilityService) Update(ctx context.Context, id string, updates *model.StudioScheduleUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Schedule ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapRepoError(err, id)
	}

	merged := s.mergeScheduleUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Schedule validation failed",
			"id", id,
			"studio_id", merged.StudioID,
			"error", err,
		)
		return apperrors.Validation("Schedule validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update schedule", "id", id, "error", err)
		return s.mapRepoError(err, id)
	}

	s.cfg.Log.Info("Schedule updated successfully", "id", id, "studio_id", merged.StudioID)
	return nil
}

func (s *availabilityService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Schedule ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, availerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Schedule", id)
		}
		if errors.Is(err, availerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid schedule ID format")
		}
		s.cfg.Log.Error("Failed to delete schedule", "id", id, "error", err)
		return apperrors.Internal("Failed to delete schedule", err)
	}

	s.cfg.Log.Info("Schedule deleted successfully", "id", id)
	return nil
}

// AvailabilityFor projects a studio's schedule into the read model the
// booking flow consumes.
func (s *availabilityService) AvailabilityFor(ctx context.Context, studioID string) (*model.StudioAvailability, error) {
	sc, err := s.GetByStudio(ctx, studioID)
	if err != nil {
		return nil, err
	}

	return &model.StudioAvailability{
		StudioID:    sc.StudioID,
		WeeklyHours: sc.WeeklyHours,
		TimeOff:     sc.TimeOff,
		LunchBreak:  sc.LunchBreak,
	}, nil
}

func (s *availabilityService) SelectableDates(ctx context.Context, studioID string, from time.Time) ([]string, error) {
	avail, err := s.AvailabilityFor(ctx, studioID)
	if err != nil {
		return nil, err
	}

	dates := s.resolver.SelectableDates(avail, from, s.cfg.BookingWindowDays)
	s.cfg.Log.Debug("Resolved selectable dates",
		"studio_id", studioID,
		"window_days", s.cfg.BookingWindowDays,
		"count", len(dates),
	)
	return dates, nil
}

func (s *availabilityService) SlotsFor(ctx context.Context, studioID string, date string) ([]string, error) {
	if _, err := time.Parse(model.CalendarDateLayout, date); err != nil {
		return nil, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}

	avail, err := s.AvailabilityFor(ctx, studioID)
	if err != nil {
		return nil, err
	}

	slots := s.resolver.SlotsFor(avail, date)
	s.cfg.Log.Debug("Resolved slots",
		"studio_id", studioID,
		"date", date,
		"count", len(slots),
	)
	return slots, nil
}

func (s *availabilityService) mapRepoError(err error, id string) error {
	if errors.Is(err, availerrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Schedule", id)
	}
	if errors.Is(err, availerrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid schedule ID format")
	}
	s.cfg.Log.Error("Schedule repository error", "id", id, "error", err)
	return apperrors.Internal("Failed to access schedule", err)
}

func (s *availabilityService) sanitize(sc *model.StudioSchedule) {
	sc.StudioID = sanitizer.NormalizeStudioID(sc.StudioID)
	sc.TimeZone = sanitizer.TrimAndNormalize(sc.TimeZone)
}

// applyDefaults fills a sparse schedule: open days without hours get the
// configured defaults, and an empty week gets the regional open-day
// pattern.
func (s *availabilityService) applyDefaults(sc *model.StudioSchedule) {
	if len(sc.WeeklyHours) == 0 {
		var weekdays []int
		switch locale.DetectRegion(sc.TimeZone) {
		case "IL":
			weekdays = config.DefaultOpenWeekdaysIL
		default:
			weekdays = config.DefaultOpenWeekdaysUS
		}
		for _, wd := range weekdays {
			sc.WeeklyHours = append(sc.WeeklyHours, model.DayHours{
				Weekday:  wd,
				Open:     true,
				OpensAt:  s.cfg.DefaultOpensAt,
				ClosesAt: s.cfg.DefaultClosesAt,
			})
		}
		return
	}

	for i := range sc.WeeklyHours {
		day := &sc.WeeklyHours[i]
		if !day.Open {
			continue
		}
		if day.OpensAt == "" {
			day.OpensAt = s.cfg.DefaultOpensAt
		}
		if day.ClosesAt == "" {
			day.ClosesAt = s.cfg.DefaultClosesAt
		}
	}
}

func (s *availabilityService) mergeScheduleUpdates(existing *model.StudioSchedule, updates *model.StudioScheduleUpdate) *model.StudioSchedule {
	merged := *existing

	if updates.WeeklyHours != nil {
		merged.WeeklyHours = *updates.WeeklyHours
	}
	if updates.LunchBreak != nil {
		merged.LunchBreak = *updates.LunchBreak
	}
	if updates.TimeOff != nil {
		merged.TimeOff = *updates.TimeOff
	}
	if updates.TimeZone != "" {
		merged.TimeZone = updates.TimeZone
	}

	merged.ID = existing.ID
	merged.StudioID = existing.StudioID
	merged.CreatedAt = existing.CreatedAt
	return &merged
}
