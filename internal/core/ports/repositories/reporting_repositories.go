package repositories

import (
	"context"
	"time"

	"github.com/centavoapp/centavo/internal/core/domain"
)

// ReportingRepository exposes read-only aggregations over transactions.
type ReportingRepository interface {
	// GetSummary sums income, expense and net over the user's transactions
	// between from and to (inclusive); nil bounds are open-ended.
	GetSummary(ctx context.Context, userID string, from *time.Time, to *time.Time) (*domain.Summary, error)

	// GetExpenseByCategory aggregates expense totals per category for the period.
	GetExpenseByCategory(ctx context.Context, userID string, from *time.Time, to *time.Time) ([]domain.CategoryAmount, error)
}
