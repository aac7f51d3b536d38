package repositories

import (
	"context"
	"time"

	"github.com/centavoapp/centavo/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows ListTransactions. Nil fields are ignored.
type TransactionFilter struct {
	AccountID  *string
	CategoryID *string
	Kind       *domain.EntryKind
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data.
//
// Every method persists the row mutation and the paired account balance
// changes in a single database transaction; either both are applied or
// neither is. The balanceChanges map carries the net delta per account id,
// built by the service as an explicit reverse-then-apply sequence.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error
	DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
