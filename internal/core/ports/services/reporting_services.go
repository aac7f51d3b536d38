package services

import (
	"context"
	"time"

	"github.com/centavoapp/centavo/internal/core/domain"
	"github.com/centavoapp/centavo/internal/dto"
)

// ReportingSvcFacade defines read-only aggregations over transactions.
type ReportingSvcFacade interface {
	// GetSummary sums income, expense and net over the user's transactions
	// between from and to (inclusive); nil bounds are open-ended.
	GetSummary(ctx context.Context, userID string, from *time.Time, to *time.Time) (*domain.Summary, error)

	// GetDashboard fetches the summary, expense breakdown and recent
	// transactions for the period concurrently.
	GetDashboard(ctx context.Context, userID string, from *time.Time, to *time.Time) (*dto.DashboardResponse, error)
}
