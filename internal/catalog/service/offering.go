package service

import (
	"context"
	"errors"
	"strings"

	catalogerrors "atelier/internal/catalog/errors"
	"atelier/internal/catalog/repository"
	"atelier/internal/catalog/validator"
	"atelier/pkg/config"
	apperrors "atelier/pkg/errors"
	"atelier/pkg/model"
	"atelier/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type CatalogService interface {
	Create(ctx context.Context, offering *model.ServiceOffering) error
	GetByID(ctx context.Context, id string) (*model.ServiceOffering, error)
	GetByStudio(ctx context.Context, studioID string, activeOnly bool, limit int, offset int64) ([]*model.ServiceOffering, int64, error)
	Update(ctx context.Context, id string, updates *model.ServiceOfferingUpdate) error
	Delete(ctx context.Context, id string) error
}

type catalogService struct {
	repo      repository.OfferingRepository
	validator *validator.OfferingValidator
	cfg       *config.Config
}

func NewCatalogService(
	repo repository.OfferingRepository,
	validator *validator.OfferingValidator,
	cfg *config.Config,
) CatalogService {
	return &catalogService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *catalogService) Create(ctx context.Context, offering *model.ServiceOffering) error {
	s.sanitize(offering)

	if err := s.validator.Validate(offering); err != nil {
		s.cfg.Log.Warn("Service offering validation failed",
			"name", offering.Name,
			"studio_id", offering.StudioID,
			"error", err,
		)
		return apperrors.Validation("Service offering validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByStudio(sessCtx, offering.StudioID, false, config.DefaultPaginationLimit, 0)
		if err != nil {
			return apperrors.Internal("Failed to check for existing offerings", err)
		}
		for _, e := range existing {
			if strings.EqualFold(e.Name, offering.Name) {
				return apperrors.Conflict("A service with the same name already exists for this studio")
			}
		}
		return s.repo.Create(sessCtx, offering)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create service offering",
			"name", offering.Name,
			"studio_id", offering.StudioID,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Service offering created successfully",
		"id", offering.ID,
		"name", offering.Name,
		"studio_id", offering.StudioID,
	)
	return nil
}

func (s *catalogService) GetByID(ctx context.Context, id string) (*model.ServiceOffering, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Service offering ID cannot be empty")
	}

	offering, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}
	return offering, nil
}

func (s *catalogService) GetByStudio(ctx context.Context, studioID string, activeOnly bool, limit int, offset int64) ([]*model.ServiceOffering, int64, error) {
	studioID = sanitizer.NormalizeStudioID(studioID)
	if studioID == "" {
		return nil, 0, apperrors.InvalidInput("Studio ID cannot be empty")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	offerings, err := s.repo.FindByStudio(ctx, studioID, activeOnly, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list service offerings",
			"studio_id", studioID,
			"error", err,
		)
		return nil, 0, apperrors.Internal("Failed to retrieve service offerings", err)
	}

	count, err := s.repo.CountByStudio(ctx, studioID, activeOnly)
	if err != nil {
		s.cfg.Log.Error("Failed to count service offerings",
			"studio_id", studioID,
			"error", err,
		)
		return nil, 0, apperrors.Internal("Failed to count service offerings", err)
	}

	return offerings, count, nil
}

func (s *catalogService) Update(ctx context.Context, id string, updates *model.ServiceOfferingUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Service offering ID cannot be empty")
	}

	if updates.Name != "" {
		updates.Name = sanitizer.NormalizeName(updates.Name)
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		return apperrors.Validation("Service offering validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapRepoError(err, id)
	}

	merged := s.mergeOfferingUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		return apperrors.Validation("Service offering validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update service offering", "id", id, "error", err)
		return s.mapRepoError(err, id)
	}

	s.cfg.Log.Info("Service offering updated successfully", "id", id, "name", merged.Name)
	return nil
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Service offering ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, catalogerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Service offering", id)
		}
		if errors.Is(err, catalogerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid service offering ID format")
		}
		s.cfg.Log.Error("Failed to delete service offering", "id", id, "error", err)
		return apperrors.Internal("Failed to delete service offering", err)
	}

	s.cfg.Log.Info("Service offering deleted successfully", "id", id)
	return nil
}

func (s *catalogService) mapRepoError(err error, id string) error {
	if errors.Is(err, catalogerrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Service offering", id)
	}
	if errors.Is(err, catalogerrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid service offering ID format")
	}
	s.cfg.Log.Error("Service offering repository error", "id", id, "error", err)
	return apperrors.Internal("Failed to access service offering", err)
}

func (s *catalogService) sanitize(offering *model.ServiceOffering) {
	offering.StudioID = sanitizer.NormalizeStudioID(offering.StudioID)
	offering.Name = sanitizer.NormalizeName(offering.Name)
}

func (s *catalogService) mergeOfferingUpdates(existing *model.ServiceOffering, updates *model.ServiceOfferingUpdate) *model.ServiceOffering {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.DurationMin != nil {
		merged.DurationMin = *updates.DurationMin
	}
	if updates.PriceCents != nil {
		merged.PriceCents = *updates.PriceCents
	}
	if updates.DepositCents != nil {
		merged.DepositCents = *updates.DepositCents
	}
	if updates.Active != nil {
		merged.Active = *updates.Active
	}

	merged.ID = existing.ID
	merged.StudioID = existing.StudioID
	merged.CreatedAt = existing.CreatedAt
	return &merged
}
