package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/centavoapp/centavo/internal/apperrors"
	"github.com/centavoapp/centavo/internal/core/domain"
	portsrepo "github.com/centavoapp/centavo/internal/core/ports/repositories"
	portssvc "github.com/centavoapp/centavo/internal/core/ports/services"
	"github.com/centavoapp/centavo/internal/dto"
	"github.com/centavoapp/centavo/internal/middleware"
	"github.com/centavoapp/centavo/internal/platform/cache"
)

const budgetsCacheEntity = "budgets"

// budgetService provides budget lifecycle operations.
type budgetService struct {
	budgetRepo   portsrepo.BudgetRepositoryFacade
	categoryRepo portsrepo.CategoryReader
	cache        cache.Cache
	cacheTTL     time.Duration
}

// NewBudgetService creates a new budget service.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, categoryRepo portsrepo.CategoryReader, c cache.Cache, ttl time.Duration) portssvc.BudgetSvcFacade {
	return &budgetService{budgetRepo: budgetRepo, categoryRepo: categoryRepo, cache: c, cacheTTL: ttl}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: budget amount must be positive", apperrors.ErrValidation)
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", apperrors.ErrValidation)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category %s: %w", req.CategoryID, err)
	}
	if category.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	now := time.Now().UTC()
	budget := domain.Budget{
		BudgetID:   uuid.NewString(),
		UserID:     userID,
		CategoryID: req.CategoryID,
		Month:      req.Month,
		Year:       req.Year,
		Amount:     req.Amount.Round(2),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	// The (category, month, year, user) unique constraint surfaces as
	// ErrDuplicate.
	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		if !errorsIsDuplicate(err) {
			logger.Error("Failed to save budget", slog.String("error", err.Error()), slog.String("user_id", userID))
		}
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	s.cache.Invalidate(cachePrefix(budgetsCacheEntity, userID))
	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID), slog.Int("month", req.Month), slog.Int("year", req.Year))
	return &budget, nil
}

func (s *budgetService) findOwnedBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to find budget %s: %w", budgetID, err)
	}
	if budget.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return budget, nil
}

func (s *budgetService) GetBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error) {
	return s.findOwnedBudget(ctx, userID, budgetID)
}

func (s *budgetService) ListBudgets(ctx context.Context, userID string, month int, year int) ([]domain.BudgetUsage, error) {
	key := cacheKey(budgetsCacheEntity, userID, fmt.Sprintf("%04d-%02d", year, month))
	if cached, ok := s.cache.Get(key); ok {
		if budgets, ok := cached.([]domain.BudgetUsage); ok {
			return budgets, nil
		}
	}

	budgets, err := s.budgetRepo.ListBudgetUsage(ctx, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	s.cache.Set(key, budgets, s.cacheTTL)
	return budgets, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: no updatable fields provided", apperrors.ErrValidation)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: budget amount must be positive", apperrors.ErrValidation)
	}

	budget, err := s.findOwnedBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	budget.Amount = req.Amount.Round(2)
	budget.LastUpdatedAt = time.Now().UTC()

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		logger.Error("Failed to update budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	s.cache.Invalidate(cachePrefix(budgetsCacheEntity, userID))
	logger.Info("Budget updated", slog.String("budget_id", budgetID))
	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, userID string, budgetID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedBudget(ctx, userID, budgetID); err != nil {
		return err
	}

	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		logger.Error("Failed to delete budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	s.cache.Invalidate(cachePrefix(budgetsCacheEntity, userID))
	logger.Info("Budget deleted", slog.String("budget_id", budgetID))
	return nil
}
