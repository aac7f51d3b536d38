package services

import (
	"context"

	"github.com/centavoapp/centavo/internal/core/domain"
	"github.com/centavoapp/centavo/internal/dto"
)

// AccountSvcFacade defines the operations for managing accounts.
// Balances are never edited through this facade after creation; corrections
// run through TransactionSvcFacade.CorrectBalance.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, userID string, onlyActive bool) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeleteAccount(ctx context.Context, userID string, accountID string) error
}
