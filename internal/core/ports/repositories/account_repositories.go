package repositories

import (
	"context"
	"time"

	"github.com/centavoapp/centavo/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccountsByUser(ctx context.Context, userID string, onlyActive bool) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes the account and its transactions in one database
	// transaction. The balance projection disappears with the account.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountBalancer exposes the balance mutations the transaction repository
// performs inside its own database transactions. Nothing else writes balances
// after account creation.
type AccountBalancer interface {
	// FindAccountsByIDsForUpdate locks the given accounts FOR UPDATE within tx
	// and returns them keyed by id. A missing account yields ErrNotFound so the
	// caller aborts the whole unit.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx adds each delta to its account's cached balance
	// within tx.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalancer
}
