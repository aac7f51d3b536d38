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
	"github.com/centavoapp/centavo/internal/utils/billing"
	"github.com/centavoapp/centavo/internal/utils/money"
)

const cardTransactionsCacheEntity = "card_transactions"

type cardTransactionService struct {
	cardTxnRepo  portsrepo.CardTransactionRepositoryFacade
	cardRepo     portsrepo.CardReader
	categoryRepo portsrepo.CategoryReader
	cache        cache.Cache
	cacheTTL     time.Duration
}

// NewCardTransactionService creates a new card transaction service.
func NewCardTransactionService(
	cardTxnRepo portsrepo.CardTransactionRepositoryFacade,
	cardRepo portsrepo.CardReader,
	categoryRepo portsrepo.CategoryReader,
	c cache.Cache,
	ttl time.Duration,
) portssvc.CardTransactionSvcFacade {
	return &cardTransactionService{
		cardTxnRepo:  cardTxnRepo,
		cardRepo:     cardRepo,
		categoryRepo: categoryRepo,
		cache:        c,
		cacheTTL:     ttl,
	}
}

var _ portssvc.CardTransactionSvcFacade = (*cardTransactionService)(nil)

func (s *cardTransactionService) findOwnedCard(ctx context.Context, userID, cardID string) (*domain.Card, error) {
	card, err := s.cardRepo.FindCardByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to find card %s: %w", cardID, err)
	}
	if card.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return card, nil
}

func (s *cardTransactionService) invalidateAfterMutation(userID string) {
	// The card's cached display amount moved with the rows.
	s.cache.Invalidate(cachePrefix(cardTransactionsCacheEntity, userID))
	s.cache.Invalidate(cachePrefix(cardsCacheEntity, userID))
}

// CreateCardPurchase records a purchase on a card. For a single installment
// one row is stored as-is. For n >= 2 the total is allocated into n cent-exact
// parts that sum back to it, the rows share a fresh group id, and row i lands
// i-1 calendar months after the purchase date with the day clamped to month
// length. All rows and the card amount change are persisted atomically.
func (s *cardTransactionService) CreateCardPurchase(ctx context.Context, userID string, req dto.CreateCardPurchaseRequest) ([]domain.CardTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: purchase amount must be positive", apperrors.ErrValidation)
	}
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown entry kind %q", apperrors.ErrValidation, req.Kind)
	}
	if req.Installments < 1 || req.Installments > 99 {
		return nil, fmt.Errorf("%w: installments must be between 1 and 99", apperrors.ErrValidation)
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if _, err := s.findOwnedCard(ctx, userID, req.CardID); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category %s: %w", req.CategoryID, err)
	}
	if category.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	parts, err := money.Allocate(req.Amount, req.Installments)
	if err != nil {
		return nil, err
	}

	var groupID *string
	if req.Installments > 1 {
		id := uuid.NewString()
		groupID = &id
	}

	now := time.Now().UTC()
	rows := make([]domain.CardTransaction, req.Installments)
	amountChange := decimal.Zero
	for i := range rows {
		rows[i] = domain.CardTransaction{
			CardTransactionID: uuid.NewString(),
			UserID:            userID,
			CardID:            req.CardID,
			CategoryID:        req.CategoryID,
			Description:       req.Description,
			Amount:            parts[i],
			Kind:              req.Kind,
			Date:              billing.AddMonthsClamped(date, i),
			Installment:       i + 1,
			InstallmentTotal:  req.Installments,
			GroupID:           groupID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
		amountChange = amountChange.Add(rows[i].SignedAmount())
	}

	if err := s.cardTxnRepo.SaveCardTransactionGroup(ctx, rows, amountChange); err != nil {
		logger.Error("Failed to save card purchase", slog.String("error", err.Error()), slog.String("card_id", req.CardID))
		return nil, fmt.Errorf("failed to save card purchase: %w", err)
	}

	s.invalidateAfterMutation(userID)
	logger.Info("Card purchase recorded",
		slog.String("card_id", req.CardID),
		slog.Int("installments", req.Installments),
		slog.String("total", req.Amount.StringFixed(2)))
	return rows, nil
}

func (s *cardTransactionService) findOwnedCardTransaction(ctx context.Context, userID, cardTransactionID string) (*domain.CardTransaction, error) {
	txn, err := s.cardTxnRepo.FindCardTransactionByID(ctx, cardTransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find card transaction %s: %w", cardTransactionID, err)
	}
	if txn.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

func (s *cardTransactionService) GetCardTransactionByID(ctx context.Context, userID string, cardTransactionID string) (*domain.CardTransaction, error) {
	return s.findOwnedCardTransaction(ctx, userID, cardTransactionID)
}

// ListCardTransactions returns a card's rows, optionally narrowed to the
// statement of a given month and year. Bucketing is computed over the stored
// dates with the card's due day, so a purchase on or after the closing day
// shows up on the following statement.
func (s *cardTransactionService) ListCardTransactions(ctx context.Context, userID string, cardID string, params dto.ListCardTransactionsParams) ([]domain.CardTransaction, error) {
	card, err := s.findOwnedCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	if (params.Month == 0) != (params.Year == 0) {
		return nil, fmt.Errorf("%w: month and year must be provided together", apperrors.ErrValidation)
	}

	key := cacheKey(cardTransactionsCacheEntity, userID, fmt.Sprintf("%s:%04d-%02d", cardID, params.Year, params.Month))
	if cached, ok := s.cache.Get(key); ok {
		if txns, ok := cached.([]domain.CardTransaction); ok {
			return txns, nil
		}
	}

	rows, err := s.cardTxnRepo.ListCardTransactions(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list card transactions: %w", err)
	}

	if params.Month != 0 {
		filtered := make([]domain.CardTransaction, 0, len(rows))
		for _, r := range rows {
			m, y := billing.CycleFor(card.DueDay, r.Date)
			if m == time.Month(params.Month) && y == params.Year {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	s.cache.Set(key, rows, s.cacheTTL)
	return rows, nil
}

func (s *cardTransactionService) DeleteCardPurchase(ctx context.Context, userID string, cardTransactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.findOwnedCardTransaction(ctx, userID, cardTransactionID)
	if err != nil {
		return err
	}
	if txn.GroupID != nil {
		return fmt.Errorf("%w: installment belongs to a group, delete the group instead", apperrors.ErrConflict)
	}

	if err := s.cardTxnRepo.DeleteCardTransaction(ctx, cardTransactionID, txn.CardID, txn.SignedAmount().Neg()); err != nil {
		logger.Error("Failed to delete card transaction", slog.String("error", err.Error()), slog.String("card_transaction_id", cardTransactionID))
		return fmt.Errorf("failed to delete card transaction: %w", err)
	}

	s.invalidateAfterMutation(userID)
	logger.Info("Card transaction deleted", slog.String("card_transaction_id", cardTransactionID))
	return nil
}

// DeleteCardPurchaseGroup removes every installment of a purchase and reverses
// their combined contribution to the card amount, atomically.
func (s *cardTransactionService) DeleteCardPurchaseGroup(ctx context.Context, userID string, groupID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	rows, err := s.cardTxnRepo.FindCardTransactionsByGroupID(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to find card transaction group %s: %w", groupID, err)
	}
	if len(rows) == 0 || rows[0].UserID != userID {
		return apperrors.ErrNotFound
	}

	amountChange := decimal.Zero
	for _, r := range rows {
		amountChange = amountChange.Sub(r.SignedAmount())
	}

	if err := s.cardTxnRepo.DeleteCardTransactionGroup(ctx, groupID, rows[0].CardID, amountChange); err != nil {
		logger.Error("Failed to delete card transaction group", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return fmt.Errorf("failed to delete card transaction group: %w", err)
	}

	s.invalidateAfterMutation(userID)
	logger.Info("Card transaction group deleted", slog.String("group_id", groupID), slog.Int("installments", len(rows)))
	return nil
}
