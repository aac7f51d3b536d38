package services

import (
	"context"

	"github.com/centavoapp/centavo/internal/core/domain"
	"github.com/centavoapp/centavo/internal/dto"
)

// TransactionSvcFacade defines the operations for managing transactions.
// Every mutation keeps the owning account's cached balance equal to the
// signed sum of the account's transactions.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error

	// BulkCreateTransactions imports records strictly sequentially, one atomic
	// unit per record; earlier records stay committed when a later one fails.
	BulkCreateTransactions(ctx context.Context, userID string, req dto.BulkCreateTransactionsRequest) *dto.BulkCreateTransactionsResponse

	// CorrectBalance brings an account's balance to the requested target by
	// creating a compensating transaction, preserving the ledger invariant.
	CorrectBalance(ctx context.Context, userID string, accountID string, req dto.CorrectBalanceRequest) (*domain.Transaction, error)
}
