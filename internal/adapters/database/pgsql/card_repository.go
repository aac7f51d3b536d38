package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/centavoapp/centavo/internal/apperrors"
	"github.com/centavoapp/centavo/internal/core/domain"
	portsrepo "github.com/centavoapp/centavo/internal/core/ports/repositories"
)

type PgxCardRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCardRepository creates a new repository for card data.
func NewPgxCardRepository(pool *pgxpool.Pool) portsrepo.CardRepositoryFacade {
	return &PgxCardRepository{pool: pool}
}

const cardColumns = `card_id, user_id, name, due_day, amount, paid, created_at, last_updated_at`

func scanCard(row pgx.Row) (*domain.Card, error) {
	var card domain.Card
	err := row.Scan(
		&card.CardID,
		&card.UserID,
		&card.Name,
		&card.DueDay,
		&card.Amount,
		&card.Paid,
		&card.CreatedAt,
		&card.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *PgxCardRepository) SaveCard(ctx context.Context, card domain.Card) error {
	query := `
		INSERT INTO cards (` + cardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		card.CardID,
		card.UserID,
		card.Name,
		card.DueDay,
		card.Amount,
		card.Paid,
		card.CreatedAt,
		card.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert card %s: %w", card.CardID, mapConstraintError(err))
	}
	return nil
}

func (r *PgxCardRepository) FindCardByID(ctx context.Context, cardID string) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE card_id = $1;`
	card, err := scanCard(r.pool.QueryRow(ctx, query, cardID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find card by ID %s: %w", cardID, err)
	}
	return card, nil
}

func (r *PgxCardRepository) ListCardsByUser(ctx context.Context, userID string) ([]domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE user_id = $1 ORDER BY created_at;`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards for user %s: %w", userID, err)
	}
	defer rows.Close()

	cards := []domain.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating card rows: %w", err)
	}
	return cards, nil
}

func (r *PgxCardRepository) UpdateCard(ctx context.Context, card domain.Card) error {
	// The cached amount is excluded here; it only moves with card transaction
	// mutations.
	query := `
		UPDATE cards
		SET name = $2, due_day = $3, paid = $4, last_updated_at = $5
		WHERE card_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		card.CardID,
		card.Name,
		card.DueDay,
		card.Paid,
		card.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update card %s: %w", card.CardID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCard removes the card and its card transactions in one database
// transaction.
func (r *PgxCardRepository) DeleteCard(ctx context.Context, cardID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM card_transactions WHERE card_id = $1;`, cardID); err != nil {
		return fmt.Errorf("failed to delete card transactions for card %s: %w", cardID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM cards WHERE card_id = $1;`, cardID)
	if err != nil {
		return fmt.Errorf("failed to delete card %s: %w", cardID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete of card %s: %w", cardID, err)
	}
	return nil
}
