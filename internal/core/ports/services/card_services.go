package services

import (
	"context"

	"github.com/centavoapp/centavo/internal/core/domain"
	"github.com/centavoapp/centavo/internal/dto"
)

// CardSvcFacade defines the operations for managing cards.
type CardSvcFacade interface {
	CreateCard(ctx context.Context, userID string, req dto.CreateCardRequest) (*domain.Card, error)
	GetCardByID(ctx context.Context, userID string, cardID string) (*domain.Card, error)
	ListCards(ctx context.Context, userID string) ([]domain.Card, error)
	UpdateCard(ctx context.Context, userID string, cardID string, req dto.UpdateCardRequest) (*domain.Card, error)
	DeleteCard(ctx context.Context, userID string, cardID string) error

	// MarkPaid pins the card's status to PAID until Reopen is called.
	MarkPaid(ctx context.Context, userID string, cardID string) (*domain.Card, error)
	Reopen(ctx context.Context, userID string, cardID string) (*domain.Card, error)
}

// CardTransactionSvcFacade defines the operations for card purchases and
// their installment groups.
type CardTransactionSvcFacade interface {
	// CreateCardPurchase records a purchase; installment counts of 2 or more
	// allocate per-installment cent-exact amounts and persist the whole group
	// atomically.
	CreateCardPurchase(ctx context.Context, userID string, req dto.CreateCardPurchaseRequest) ([]domain.CardTransaction, error)

	GetCardTransactionByID(ctx context.Context, userID string, cardTransactionID string) (*domain.CardTransaction, error)
	ListCardTransactions(ctx context.Context, userID string, cardID string, params dto.ListCardTransactionsParams) ([]domain.CardTransaction, error)

	// DeleteCardPurchase removes a single-installment purchase. Rows that
	// belong to a group must be removed through DeleteCardPurchaseGroup.
	DeleteCardPurchase(ctx context.Context, userID string, cardTransactionID string) error
	DeleteCardPurchaseGroup(ctx context.Context, userID string, groupID string) error
}
