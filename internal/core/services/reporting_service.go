package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/centavoapp/centavo/internal/core/domain"
	portsrepo "github.com/centavoapp/centavo/internal/core/ports/repositories"
	portssvc "github.com/centavoapp/centavo/internal/core/ports/services"
	"github.com/centavoapp/centavo/internal/dto"
)

// recentTransactionsLimit bounds the dashboard's recent-activity list.
const recentTransactionsLimit = 10

type reportingService struct {
	reportingRepo   portsrepo.ReportingRepository
	transactionRepo portsrepo.TransactionReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, transactionRepo portsrepo.TransactionReader) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo, transactionRepo: transactionRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) GetSummary(ctx context.Context, userID string, from *time.Time, to *time.Time) (*domain.Summary, error) {
	summary, err := s.reportingRepo.GetSummary(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}
	return summary, nil
}

// GetDashboard assembles the landing-page overview. The three reads are
// independent, so they run concurrently; the first error cancels the rest.
func (s *reportingService) GetDashboard(ctx context.Context, userID string, from *time.Time, to *time.Time) (*dto.DashboardResponse, error) {
	var (
		summary   *domain.Summary
		breakdown []domain.CategoryAmount
		recent    []domain.Transaction
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.reportingRepo.GetSummary(gCtx, userID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		breakdown, err = s.reportingRepo.GetExpenseByCategory(gCtx, userID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.transactionRepo.ListTransactions(gCtx, userID, portsrepo.TransactionFilter{
			DateFrom: from,
			DateTo:   to,
			Limit:    recentTransactionsLimit,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	return &dto.DashboardResponse{
		Summary:            dto.ToSummaryResponse(summary),
		ExpenseByCategory:  dto.ToCategoryAmountResponses(breakdown),
		RecentTransactions: dto.ToListTransactionResponse(recent),
	}, nil
}
