package repositories

import (
	"context"

	"github.com/centavoapp/centavo/internal/core/domain"
)

// BudgetReader defines read operations for budget data.
type BudgetReader interface {
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// ListBudgetUsage lists a user's budgets for a month together with the
	// spent amount aggregated from that month's transactions.
	ListBudgetUsage(ctx context.Context, userID string, month int, year int) ([]domain.BudgetUsage, error)
}

// BudgetWriter defines write operations for budget data.
type BudgetWriter interface {
	// SaveBudget returns ErrDuplicate when a budget already exists for the
	// same (category, month, year, user) tuple.
	SaveBudget(ctx context.Context, budget domain.Budget) error
	UpdateBudget(ctx context.Context, budget domain.Budget) error
	DeleteBudget(ctx context.Context, budgetID string) error
}

// BudgetRepositoryFacade combines all budget repository interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
