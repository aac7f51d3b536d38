package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/centavoapp/centavo/internal/apperrors"
	"github.com/centavoapp/centavo/internal/core/domain"
	portsrepo "github.com/centavoapp/centavo/internal/core/ports/repositories"
	portssvc "github.com/centavoapp/centavo/internal/core/ports/services"
	"github.com/centavoapp/centavo/internal/dto"
	"github.com/centavoapp/centavo/internal/middleware"
	"github.com/centavoapp/centavo/internal/platform/cache"
)

const accountsCacheEntity = "accounts"

// accountService provides account lifecycle operations. The cached balance
// field is set here exactly once, at creation; every later balance write goes
// through the transaction repository.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	cache       cache.Cache
	cacheTTL    time.Duration
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, c cache.Cache, ttl time.Duration) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, cache: c, cacheTTL: ttl}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		AccountType: req.AccountType,
		Balance:     req.InitialBalance.Round(2),
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.cache.Invalidate(cachePrefix(accountsCacheEntity, userID))
	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("user_id", userID))
	return &account, nil
}

// findOwnedAccount fetches the account and hides its existence from other users.
func (s *accountService) findOwnedAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	return s.findOwnedAccount(ctx, userID, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, userID string, onlyActive bool) ([]domain.Account, error) {
	key := cacheKey(accountsCacheEntity, userID, fmt.Sprintf("active=%t", onlyActive))
	if cached, ok := s.cache.Get(key); ok {
		if accounts, ok := cached.([]domain.Account); ok {
			return accounts, nil
		}
	}

	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	s.cache.Set(key, accounts, s.cacheTTL)
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: no updatable fields provided", apperrors.ErrValidation)
	}

	account, err := s.findOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.AccountType != nil {
		if !req.AccountType.Valid() {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		account.AccountType = *req.AccountType
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.cache.Invalidate(cachePrefix(accountsCacheEntity, userID))
	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedAccount(ctx, userID, accountID); err != nil {
		return err
	}

	// Removes the account and its transactions in one database transaction;
	// the balance projection disappears with the account.
	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.cache.Invalidate(cachePrefix(accountsCacheEntity, userID))
	s.cache.Invalidate(cachePrefix(transactionsCacheEntity, userID))
	s.cache.Invalidate(cachePrefix(budgetsCacheEntity, userID))
	logger.Info("Account deleted with its transactions", slog.String("account_id", accountID))
	return nil
}
