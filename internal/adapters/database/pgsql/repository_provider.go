package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/centavoapp/centavo/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository over the shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	accountRepo := NewPgxAccountRepository(pool)
	return &portsrepo.RepositoryProvider{
		UserRepo:            NewPgxUserRepository(pool),
		AccountRepo:         accountRepo,
		CategoryRepo:        NewPgxCategoryRepository(pool),
		BudgetRepo:          NewPgxBudgetRepository(pool),
		TransactionRepo:     NewPgxTransactionRepository(pool, accountRepo),
		CardRepo:            NewPgxCardRepository(pool),
		CardTransactionRepo: NewPgxCardTransactionRepository(pool),
		ReportingRepo:       NewPgxReportingRepository(pool),
	}
}
