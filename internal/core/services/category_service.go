package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/centavoapp/centavo/internal/apperrors"
	"github.com/centavoapp/centavo/internal/core/domain"
	portsrepo "github.com/centavoapp/centavo/internal/core/ports/repositories"
	portssvc "github.com/centavoapp/centavo/internal/core/ports/services"
	"github.com/centavoapp/centavo/internal/dto"
	"github.com/centavoapp/centavo/internal/middleware"
	"github.com/centavoapp/centavo/internal/platform/cache"
)

const categoriesCacheEntity = "categories"

// categoryService provides category lifecycle operations.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
	cache        cache.Cache
	cacheTTL     time.Duration
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, c cache.Cache, ttl time.Duration) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo, cache: c, cacheTTL: ttl}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown category kind %q", apperrors.ErrValidation, req.Kind)
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		Kind:       req.Kind,
		Color:      req.Color,
		Icon:       req.Icon,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	// The repository surfaces the (name, kind, user) unique constraint as
	// ErrDuplicate, which the handler maps to a user-actionable conflict.
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		if !errorsIsDuplicate(err) {
			logger.Error("Failed to save category", slog.String("error", err.Error()), slog.String("user_id", userID))
		}
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	s.cache.Invalidate(cachePrefix(categoriesCacheEntity, userID))
	logger.Info("Category created", slog.String("category_id", category.CategoryID), slog.String("user_id", userID))
	return &category, nil
}

func (s *categoryService) findOwnedCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}
	if category.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	return s.findOwnedCategory(ctx, userID, categoryID)
}

func (s *categoryService) ListCategories(ctx context.Context, userID string, kind *domain.EntryKind) ([]domain.Category, error) {
	kindKey := "all"
	if kind != nil {
		kindKey = string(*kind)
	}
	key := cacheKey(categoriesCacheEntity, userID, kindKey)
	if cached, ok := s.cache.Get(key); ok {
		if categories, ok := cached.([]domain.Category); ok {
			return categories, nil
		}
	}

	categories, err := s.categoryRepo.ListCategoriesByUser(ctx, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	s.cache.Set(key, categories, s.cacheTTL)
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: no updatable fields provided", apperrors.ErrValidation)
	}

	category, err := s.findOwnedCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	category.LastUpdatedAt = time.Now().UTC()

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		logger.Error("Failed to update category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.cache.Invalidate(cachePrefix(categoriesCacheEntity, userID))
	logger.Info("Category updated", slog.String("category_id", categoryID))
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedCategory(ctx, userID, categoryID); err != nil {
		return err
	}

	// Budgets referencing the category are removed in the same database
	// transaction.
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		logger.Error("Failed to delete category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.cache.Invalidate(cachePrefix(categoriesCacheEntity, userID))
	s.cache.Invalidate(cachePrefix(budgetsCacheEntity, userID))
	logger.Info("Category deleted with its budgets", slog.String("category_id", categoryID))
	return nil
}
