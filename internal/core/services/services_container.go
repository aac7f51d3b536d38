package services

import (
	"time"

	portsrepo "github.com/centavoapp/centavo/internal/core/ports/repositories"
	portssvc "github.com/centavoapp/centavo/internal/core/ports/services"
	"github.com/centavoapp/centavo/internal/platform/cache"
)

// NewServiceContainer wires every service facade with its repositories and the
// shared read cache.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, c cache.Cache, cacheTTL time.Duration) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:            NewUserService(repos.UserRepo),
		Account:         NewAccountService(repos.AccountRepo, c, cacheTTL),
		Category:        NewCategoryService(repos.CategoryRepo, c, cacheTTL),
		Budget:          NewBudgetService(repos.BudgetRepo, repos.CategoryRepo, c, cacheTTL),
		Transaction:     NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.CategoryRepo, c, cacheTTL),
		Card:            NewCardService(repos.CardRepo, c, cacheTTL),
		CardTransaction: NewCardTransactionService(repos.CardTransactionRepo, repos.CardRepo, repos.CategoryRepo, c, cacheTTL),
		Reporting:       NewReportingService(repos.ReportingRepo, repos.TransactionRepo),
	}
}
