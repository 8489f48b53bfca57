package service

import (
	"context"
	"errors"

	requesterrors "atelier/internal/requests/errors"
	"atelier/internal/requests/repository"
	"atelier/internal/requests/validator"
	"atelier/pkg/config"
	apperrors "atelier/pkg/errors"
	"atelier/pkg/model"
	"atelier/pkg/sanitizer"
)

type RequestService interface {
	Create(ctx context.Context, req *model.BookingRequest) error
	GetByID(ctx context.Context, id string) (*model.BookingRequest, error)
	GetByStudio(ctx context.Context, studioID string, status string, limit int, offset int64) ([]*model.BookingRequest, int64, error)
	UpdateStatus(ctx context.Context, id string, updates *model.BookingRequestUpdate) error
}

type requestService struct {
	repo      repository.RequestRepository
	validator *validator.RequestValidator
	publisher EventPublisher
	cfg       *config.Config
}

func NewRequestService(
	repo repository.RequestRepository,
	validator *validator.RequestValidator,
	publisher EventPublisher,
	cfg *config.Config,
) RequestService {
	return &requestService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *requestService) Create(ctx context.Context, req *model.BookingRequest) error {
	s.sanitize(req)

	// Identity comes from the caller's session. A request without it is
	// an unauthenticated submission, not a validation problem.
	if req.ClientName == "" || req.ClientPhone == "" {
		return apperrors.Unauthorized("Client identity is required to submit a booking request")
	}

	if req.Status == "" {
		req.Status = model.RequestStatusPending
	}

	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking request validation failed",
			"studio_id", req.StudioID,
			"error", err,
		)
		return apperrors.Validation("Booking request validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, req); err != nil {
		s.cfg.Log.Error("Failed to create booking request",
			"studio_id", req.StudioID,
			"error", err,
		)
		return apperrors.Internal("Failed to create booking request", err)
	}

	// The request is durable at this point; a broker hiccup should not
	// fail the submission.
	if s.publisher != nil {
		if err := s.publisher.PublishRequestCreated(ctx, req); err != nil {
			s.cfg.Log.Error("Failed to publish request created event",
				"request_id", req.ID,
				"studio_id", req.StudioID,
				"error", err,
			)
		}
	}

	s.cfg.Log.Info("Booking request created successfully",
		"id", req.ID,
		"studio_id", req.StudioID,
		"service_id", req.ServiceID,
	)
	return nil
}

func (s *requestService) GetByID(ctx context.Context, id string) (*model.BookingRequest, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking request ID cannot be empty")
	}

	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}
	return req, nil
}

func (s *requestService) GetByStudio(ctx context.Context, studioID string, status string, limit int, offset int64) ([]*model.BookingRequest, int64, error) {
	studioID = sanitizer.NormalizeStudioID(studioID)
	if studioID == "" {
		return nil, 0, apperrors.InvalidInput("Studio ID cannot be empty")
	}
	if status != "" && status != model.RequestStatusPending &&
		status != model.RequestStatusContacted && status != model.RequestStatusClosed {
		return nil, 0, apperrors.InvalidInput("Status must be one of [pending, contacted, closed]")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	requests, err := s.repo.FindByStudio(ctx, studioID, status, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list booking requests",
			"studio_id", studioID,
			"status", status,
			"error", err,
		)
		return nil, 0, apperrors.Internal("Failed to retrieve booking requests", err)
	}

	count, err := s.repo.CountByStudio(ctx, studioID, status)
	if err != nil {
		s.cfg.Log.Error("Failed to count booking requests",
			"studio_id", studioID,
			"error", err,
		)
		return nil, 0, apperrors.Internal("Failed to count booking requests", err)
	}

	return requests, count, nil
}

func (s *requestService) UpdateStatus(ctx context.Context, id string, updates *model.BookingRequestUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Booking request ID cannot be empty")
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		return apperrors.Validation("Booking request validation failed", map[string]any{
			"error": err.Error(),
		})
	}
	if updates.Status == "" {
		return apperrors.InvalidInput("Status is required")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapRepoError(err, id)
	}

	if existing.Status == updates.Status {
		return nil
	}

	oldStatus := existing.Status
	if _, err := s.repo.UpdateStatus(ctx, id, updates.Status); err != nil {
		s.cfg.Log.Error("Failed to update booking request status",
			"id", id,
			"status", updates.Status,
			"error", err,
		)
		return s.mapRepoError(err, id)
	}

	existing.Status = updates.Status
	if s.publisher != nil {
		if err := s.publisher.PublishStatusChanged(ctx, existing, oldStatus); err != nil {
			s.cfg.Log.Error("Failed to publish status changed event",
				"request_id", id,
				"error", err,
			)
		}
	}

	s.cfg.Log.Info("Booking request status updated",
		"id", id,
		"old_status", oldStatus,
		"new_status", updates.Status,
	)
	return nil
}

func (s *requestService) mapRepoError(err error, id string) error {
	if errors.Is(err, requesterrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking request", id)
	}
	if errors.Is(err, requesterrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking request ID format")
	}
	s.cfg.Log.Error("Booking request repository error", "id", id, "error", err)
	return apperrors.Internal("Failed to access booking request", err)
}

func (s *requestService) sanitize(req *model.BookingRequest) {
	req.StudioID = sanitizer.NormalizeStudioID(req.StudioID)
	req.ServiceID = sanitizer.TrimAndNormalize(req.ServiceID)
	req.ClientName = sanitizer.NormalizeName(req.ClientName)
	req.ClientPhone = sanitizer.NormalizePhone(req.ClientPhone)
	req.Message = sanitizer.NormalizeNotes(req.Message)
	req.PreferredDates = sanitizer.TrimAndNormalize(req.PreferredDates)
}
