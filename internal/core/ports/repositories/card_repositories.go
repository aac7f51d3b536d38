package repositories

import (
	"context"

	"github.com/centavoapp/centavo/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CardReader defines read operations for card data.
type CardReader interface {
	FindCardByID(ctx context.Context, cardID string) (*domain.Card, error)
	ListCardsByUser(ctx context.Context, userID string) ([]domain.Card, error)
}

// CardWriter defines write operations for card data.
type CardWriter interface {
	SaveCard(ctx context.Context, card domain.Card) error
	UpdateCard(ctx context.Context, card domain.Card) error

	// DeleteCard removes the card and its card transactions in one database
	// transaction.
	DeleteCard(ctx context.Context, cardID string) error
}

// CardRepositoryFacade combines all card repository interfaces.
type CardRepositoryFacade interface {
	CardReader
	CardWriter
}

// CardTransactionReader defines read operations for card transaction data.
type CardTransactionReader interface {
	FindCardTransactionByID(ctx context.Context, cardTransactionID string) (*domain.CardTransaction, error)
	FindCardTransactionsByGroupID(ctx context.Context, groupID string) ([]domain.CardTransaction, error)

	// ListCardTransactions lists all rows for a card ordered by date. Statement
	// bucketing over the stored dates is applied by the service.
	ListCardTransactions(ctx context.Context, cardID string) ([]domain.CardTransaction, error)
}

// CardTransactionWriter defines write operations for card transaction data.
//
// Group inserts and deletes are atomic with the card's cached display amount:
// either all rows and the amount change land, or none of them do.
type CardTransactionWriter interface {
	SaveCardTransactionGroup(ctx context.Context, rows []domain.CardTransaction, amountChange decimal.Decimal) error
	DeleteCardTransaction(ctx context.Context, cardTransactionID string, cardID string, amountChange decimal.Decimal) error
	DeleteCardTransactionGroup(ctx context.Context, groupID string, cardID string, amountChange decimal.Decimal) error
}

// CardTransactionRepositoryFacade combines all card transaction repository interfaces.
type CardTransactionRepositoryFacade interface {
	CardTransactionReader
	CardTransactionWriter
}
