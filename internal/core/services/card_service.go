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

const cardsCacheEntity = "cards"

type cardService struct {
	cardRepo portsrepo.CardRepositoryFacade
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewCardService creates a new card service.
func NewCardService(cardRepo portsrepo.CardRepositoryFacade, c cache.Cache, ttl time.Duration) portssvc.CardSvcFacade {
	return &cardService{cardRepo: cardRepo, cache: c, cacheTTL: ttl}
}

var _ portssvc.CardSvcFacade = (*cardService)(nil)

func (s *cardService) CreateCard(ctx context.Context, userID string, req dto.CreateCardRequest) (*domain.Card, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.DueDay < 1 || req.DueDay > 31 {
		return nil, fmt.Errorf("%w: due day must be between 1 and 31", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	card := domain.Card{
		CardID: uuid.NewString(),
		UserID: userID,
		Name:   req.Name,
		DueDay: req.DueDay,
		Amount: decimal.Zero,
		Paid:   false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.cardRepo.SaveCard(ctx, card); err != nil {
		if !errorsIsDuplicate(err) {
			logger.Error("Failed to save card", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to save card: %w", err)
	}

	s.cache.Invalidate(cachePrefix(cardsCacheEntity, userID))
	logger.Info("Card created", slog.String("card_id", card.CardID))
	return &card, nil
}

func (s *cardService) findOwnedCard(ctx context.Context, userID, cardID string) (*domain.Card, error) {
	card, err := s.cardRepo.FindCardByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to find card %s: %w", cardID, err)
	}
	if card.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return card, nil
}

func (s *cardService) GetCardByID(ctx context.Context, userID string, cardID string) (*domain.Card, error) {
	return s.findOwnedCard(ctx, userID, cardID)
}

func (s *cardService) ListCards(ctx context.Context, userID string) ([]domain.Card, error) {
	key := cacheKey(cardsCacheEntity, userID, "all")
	if cached, ok := s.cache.Get(key); ok {
		if cards, ok := cached.([]domain.Card); ok {
			return cards, nil
		}
	}

	cards, err := s.cardRepo.ListCardsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	s.cache.Set(key, cards, s.cacheTTL)
	return cards, nil
}

func (s *cardService) UpdateCard(ctx context.Context, userID string, cardID string, req dto.UpdateCardRequest) (*domain.Card, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: no updatable fields provided", apperrors.ErrValidation)
	}

	card, err := s.findOwnedCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		card.Name = *req.Name
	}
	if req.DueDay != nil {
		if *req.DueDay < 1 || *req.DueDay > 31 {
			return nil, fmt.Errorf("%w: due day must be between 1 and 31", apperrors.ErrValidation)
		}
		card.DueDay = *req.DueDay
	}
	card.LastUpdatedAt = time.Now().UTC()

	if err := s.cardRepo.UpdateCard(ctx, *card); err != nil {
		logger.Error("Failed to update card", slog.String("error", err.Error()), slog.String("card_id", cardID))
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	s.cache.Invalidate(cachePrefix(cardsCacheEntity, userID))
	logger.Info("Card updated", slog.String("card_id", cardID))
	return card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, userID string, cardID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedCard(ctx, userID, cardID); err != nil {
		return err
	}

	if err := s.cardRepo.DeleteCard(ctx, cardID); err != nil {
		logger.Error("Failed to delete card", slog.String("error", err.Error()), slog.String("card_id", cardID))
		return fmt.Errorf("failed to delete card: %w", err)
	}

	s.cache.Invalidate(cachePrefix(cardsCacheEntity, userID))
	logger.Info("Card deleted", slog.String("card_id", cardID))
	return nil
}

// setPaid flips the sticky paid flag. The flag pins the derived status to PAID
// until Reopen clears it; the calendar-derived states resume from there.
func (s *cardService) setPaid(ctx context.Context, userID, cardID string, paid bool) (*domain.Card, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	card, err := s.findOwnedCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	if card.Paid == paid {
		return card, nil
	}

	card.Paid = paid
	card.LastUpdatedAt = time.Now().UTC()

	if err := s.cardRepo.UpdateCard(ctx, *card); err != nil {
		logger.Error("Failed to update card paid flag", slog.String("error", err.Error()), slog.String("card_id", cardID))
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	s.cache.Invalidate(cachePrefix(cardsCacheEntity, userID))
	logger.Info("Card paid flag changed", slog.String("card_id", cardID), slog.Bool("paid", paid))
	return card, nil
}

func (s *cardService) MarkPaid(ctx context.Context, userID string, cardID string) (*domain.Card, error) {
	return s.setPaid(ctx, userID, cardID, true)
}

func (s *cardService) Reopen(ctx context.Context, userID string, cardID string) (*domain.Card, error) {
	return s.setPaid(ctx, userID, cardID, false)
}
