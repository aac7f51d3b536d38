package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/centavoapp/centavo/internal/apperrors"
	"github.com/centavoapp/centavo/internal/core/domain"
	portsrepo "github.com/centavoapp/centavo/internal/core/ports/repositories"
	portssvc "github.com/centavoapp/centavo/internal/core/ports/services"
	"github.com/centavoapp/centavo/internal/dto"
	"github.com/centavoapp/centavo/internal/middleware"
	"github.com/centavoapp/centavo/internal/platform/cache"
)

const transactionsCacheEntity = "transactions"

// transactionService owns the transaction lifecycle and, with it, the balance
// consistency of accounts: every mutation hands the repository the row change
// together with the balance deltas it implies, and the repository applies both
// in one database transaction. The deltas are always built by reversing the
// old row's signed contribution before applying the new one, so an update
// that changes amount, kind and account at once is handled by construction.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountReader
	categoryRepo    portsrepo.CategoryReader
	cache           cache.Cache
	cacheTTL        time.Duration
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	categoryRepo portsrepo.CategoryReader,
	c cache.Cache,
	ttl time.Duration,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		cache:           c,
		cacheTTL:        ttl,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// validateOwnedAccount ensures the account exists, belongs to the user and is
// active before any mutation references it.
func (s *transactionService) validateOwnedAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
	}
	return account, nil
}

func (s *transactionService) validateOwnedCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}
	if category.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return category, nil
}

func (s *transactionService) invalidateAfterMutation(userID string) {
	// Balances moved, so account lists and period aggregations are stale too.
	s.cache.Invalidate(cachePrefix(transactionsCacheEntity, userID))
	s.cache.Invalidate(cachePrefix(accountsCacheEntity, userID))
	s.cache.Invalidate(cachePrefix(budgetsCacheEntity, userID))
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrValidation)
	}
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown entry kind %q", apperrors.ErrValidation, req.Kind)
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if _, err := s.validateOwnedAccount(ctx, userID, req.AccountID); err != nil {
		return nil, err
	}
	if _, err := s.validateOwnedCategory(ctx, userID, req.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		AccountID:     req.AccountID,
		CategoryID:    req.CategoryID,
		Description:   req.Description,
		Amount:        req.Amount.Round(2),
		Kind:          req.Kind,
		Date:          date,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	// Insert path: the new row's signed amount is credited to its account.
	balanceChanges := map[string]decimal.Decimal{
		txn.AccountID: txn.SignedAmount(),
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn, balanceChanges); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("account_id", txn.AccountID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.invalidateAfterMutation(userID)
	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", txn.AccountID))
	return &txn, nil
}

func (s *transactionService) findOwnedTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if txn.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	return s.findOwnedTransaction(ctx, userID, transactionID)
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	filter, filterKey, err := buildTransactionFilter(params)
	if err != nil {
		return nil, err
	}

	key := cacheKey(transactionsCacheEntity, userID, filterKey)
	if cached, ok := s.cache.Get(key); ok {
		if txns, ok := cached.([]domain.Transaction); ok {
			return txns, nil
		}
	}

	txns, err := s.transactionRepo.ListTransactions(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	s.cache.Set(key, txns, s.cacheTTL)
	return txns, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: no updatable fields provided", apperrors.ErrValidation)
	}

	oldTxn, err := s.findOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	updated := *oldTxn
	if req.AccountID != nil && *req.AccountID != oldTxn.AccountID {
		if _, err := s.validateOwnedAccount(ctx, userID, *req.AccountID); err != nil {
			return nil, err
		}
		updated.AccountID = *req.AccountID
	}
	if req.CategoryID != nil && *req.CategoryID != oldTxn.CategoryID {
		if _, err := s.validateOwnedCategory(ctx, userID, *req.CategoryID); err != nil {
			return nil, err
		}
		updated.CategoryID = *req.CategoryID
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrValidation)
		}
		updated.Amount = req.Amount.Round(2)
	}
	if req.Kind != nil {
		if !req.Kind.Valid() {
			return nil, fmt.Errorf("%w: unknown entry kind %q", apperrors.ErrValidation, *req.Kind)
		}
		updated.Kind = *req.Kind
	}
	if req.Date != nil {
		date, err := dto.ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		updated.Date = date
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	updated.LastUpdatedAt = time.Now().UTC()

	// Update path: reverse the old row's contribution against its original
	// account, then apply the new row's contribution against its (possibly
	// different) account. On the same account the two legs collapse to the
	// net delta, but the sequence stays reverse-then-apply.
	balanceChanges := make(map[string]decimal.Decimal)
	balanceChanges[oldTxn.AccountID] = balanceChanges[oldTxn.AccountID].Sub(oldTxn.SignedAmount())
	balanceChanges[updated.AccountID] = balanceChanges[updated.AccountID].Add(updated.SignedAmount())

	if err := s.transactionRepo.UpdateTransaction(ctx, updated, balanceChanges); err != nil {
		logger.Error("Failed to update transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.invalidateAfterMutation(userID)
	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))
	return &updated, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.findOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return err
	}

	// Delete path: reverse the row's contribution.
	balanceChanges := map[string]decimal.Decimal{
		txn.AccountID: txn.SignedAmount().Neg(),
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID, balanceChanges); err != nil {
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.invalidateAfterMutation(userID)
	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// BulkCreateTransactions imports records strictly sequentially, one atomic
// unit per record. A failure stops nothing: earlier records stay committed,
// later records are still attempted, and the caller gets a per-record report.
func (s *transactionService) BulkCreateTransactions(ctx context.Context, userID string, req dto.BulkCreateTransactionsRequest) *dto.BulkCreateTransactionsResponse {
	logger := middleware.GetLoggerFromCtx(ctx)

	resp := &dto.BulkCreateTransactionsResponse{
		Results: make([]dto.BulkCreateResult, 0, len(req.Transactions)),
	}

	for i, recReq := range req.Transactions {
		txn, err := s.CreateTransaction(ctx, userID, recReq)
		if err != nil {
			resp.Failed++
			resp.Results = append(resp.Results, dto.BulkCreateResult{Index: i, Error: err.Error()})
			continue
		}
		resp.Created++
		resp.Results = append(resp.Results, dto.BulkCreateResult{Index: i, TransactionID: txn.TransactionID})
	}

	logger.Info("Bulk import finished", slog.Int("created", resp.Created), slog.Int("failed", resp.Failed))
	return resp
}

// CorrectBalance reconciles an account's cached balance to a target value by
// recording a compensating transaction for the difference, so the balance
// stays equal to the signed sum of the ledger.
func (s *transactionService) CorrectBalance(ctx context.Context, userID string, accountID string, req dto.CorrectBalanceRequest) (*domain.Transaction, error) {
	account, err := s.validateOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	delta := req.TargetBalance.Round(2).Sub(account.Balance)
	if delta.IsZero() {
		return nil, fmt.Errorf("%w: balance already equals the target", apperrors.ErrValidation)
	}

	kind := domain.Income
	if delta.IsNegative() {
		kind = domain.Expense
	}

	description := req.Description
	if description == "" {
		description = "Balance correction"
	}

	return s.CreateTransaction(ctx, userID, dto.CreateTransactionRequest{
		AccountID:   accountID,
		CategoryID:  req.CategoryID,
		Description: description,
		Amount:      delta.Abs(),
		Kind:        kind,
		Date:        dto.FormatDate(time.Now().UTC()),
	})
}

// buildTransactionFilter converts list params to the repository filter and a
// deterministic cache key fragment.
func buildTransactionFilter(params dto.ListTransactionsParams) (portsrepo.TransactionFilter, string, error) {
	filter := portsrepo.TransactionFilter{
		AccountID:  params.AccountID,
		CategoryID: params.CategoryID,
		Kind:       params.Kind,
		Limit:      params.Limit,
	}

	keyParts := ""
	if params.AccountID != nil {
		keyParts += "a=" + *params.AccountID
	}
	if params.CategoryID != nil {
		keyParts += ";c=" + *params.CategoryID
	}
	if params.Kind != nil {
		keyParts += ";k=" + string(*params.Kind)
	}
	if params.DateFrom != nil {
		from, err := dto.ParseDate(*params.DateFrom)
		if err != nil {
			return filter, "", err
		}
		filter.DateFrom = &from
		keyParts += ";f=" + *params.DateFrom
	}
	if params.DateTo != nil {
		to, err := dto.ParseDate(*params.DateTo)
		if err != nil {
			return filter, "", err
		}
		filter.DateTo = &to
		keyParts += ";t=" + *params.DateTo
	}
	keyParts += fmt.Sprintf(";l=%d", params.Limit)

	return filter, keyParts, nil
}
