package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/centavoapp/centavo/internal/apperrors"
	"github.com/centavoapp/centavo/internal/core/domain"
	portsrepo "github.com/centavoapp/centavo/internal/core/ports/repositories"
)

// PgxCardTransactionRepository persists card transactions and keeps the card's
// cached display amount in step with them, mirroring how the transaction
// repository pairs ledger rows with account balances.
type PgxCardTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCardTransactionRepository creates a new repository for card transaction data.
func NewPgxCardTransactionRepository(pool *pgxpool.Pool) portsrepo.CardTransactionRepositoryFacade {
	return &PgxCardTransactionRepository{pool: pool}
}

const cardTransactionColumns = `card_transaction_id, user_id, card_id, category_id, description, amount, kind, date, installment, installment_total, group_id, created_at, last_updated_at`

func scanCardTransaction(row pgx.Row) (*domain.CardTransaction, error) {
	var txn domain.CardTransaction
	err := row.Scan(
		&txn.CardTransactionID,
		&txn.UserID,
		&txn.CardID,
		&txn.CategoryID,
		&txn.Description,
		&txn.Amount,
		&txn.Kind,
		&txn.Date,
		&txn.Installment,
		&txn.InstallmentTotal,
		&txn.GroupID,
		&txn.CreatedAt,
		&txn.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// applyCardAmountInTx locks the card row FOR UPDATE and adds the delta to its
// cached amount.
func applyCardAmountInTx(ctx context.Context, tx pgx.Tx, cardID string, delta decimal.Decimal, now time.Time) error {
	var id string
	err := tx.QueryRow(ctx, `SELECT card_id FROM cards WHERE card_id = $1 FOR UPDATE;`, cardID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("card %s: %w", cardID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to lock card %s: %w", cardID, err)
	}

	_, err = tx.Exec(ctx, `UPDATE cards SET amount = amount + $2, last_updated_at = $3 WHERE card_id = $1;`, cardID, delta, now)
	if err != nil {
		return fmt.Errorf("failed to apply amount change to card %s: %w", cardID, err)
	}
	return nil
}

// SaveCardTransactionGroup inserts all rows of a purchase and applies the
// amount change to the card in one database transaction; a failing row aborts
// the whole group.
func (r *PgxCardTransactionRepository) SaveCardTransactionGroup(ctx context.Context, rows []domain.CardTransaction, amountChange decimal.Decimal) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: empty card transaction group", apperrors.ErrValidation)
	}
	cardID := rows[0].CardID

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := applyCardAmountInTx(ctx, tx, cardID, amountChange, time.Now().UTC()); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO card_transactions (` + cardTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, txn := range rows {
		batch.Queue(query,
			txn.CardTransactionID,
			txn.UserID,
			txn.CardID,
			txn.CategoryID,
			txn.Description,
			txn.Amount,
			txn.Kind,
			txn.Date,
			txn.Installment,
			txn.InstallmentTotal,
			txn.GroupID,
			txn.CreatedAt,
			txn.LastUpdatedAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert card transaction group: %w", mapConstraintError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit card transaction group: %w", err)
	}
	return nil
}

func (r *PgxCardTransactionRepository) FindCardTransactionByID(ctx context.Context, cardTransactionID string) (*domain.CardTransaction, error) {
	query := `SELECT ` + cardTransactionColumns + ` FROM card_transactions WHERE card_transaction_id = $1;`
	txn, err := scanCardTransaction(r.pool.QueryRow(ctx, query, cardTransactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find card transaction by ID %s: %w", cardTransactionID, err)
	}
	return txn, nil
}

func (r *PgxCardTransactionRepository) FindCardTransactionsByGroupID(ctx context.Context, groupID string) ([]domain.CardTransaction, error) {
	query := `SELECT ` + cardTransactionColumns + ` FROM card_transactions WHERE group_id = $1 ORDER BY installment;`
	return r.queryCardTransactions(ctx, query, groupID)
}

func (r *PgxCardTransactionRepository) ListCardTransactions(ctx context.Context, cardID string) ([]domain.CardTransaction, error) {
	query := `SELECT ` + cardTransactionColumns + ` FROM card_transactions WHERE card_id = $1 ORDER BY date, created_at;`
	return r.queryCardTransactions(ctx, query, cardID)
}

func (r *PgxCardTransactionRepository) queryCardTransactions(ctx context.Context, query string, arg any) ([]domain.CardTransaction, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query card transactions: %w", err)
	}
	defer rows.Close()

	transactions := []domain.CardTransaction{}
	for rows.Next() {
		txn, err := scanCardTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card transaction row: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating card transaction rows: %w", err)
	}
	return transactions, nil
}

func (r *PgxCardTransactionRepository) DeleteCardTransaction(ctx context.Context, cardTransactionID string, cardID string, amountChange decimal.Decimal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := applyCardAmountInTx(ctx, tx, cardID, amountChange, time.Now().UTC()); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM card_transactions WHERE card_transaction_id = $1;`, cardTransactionID)
	if err != nil {
		return fmt.Errorf("failed to delete card transaction %s: %w", cardTransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete of card transaction %s: %w", cardTransactionID, err)
	}
	return nil
}

func (r *PgxCardTransactionRepository) DeleteCardTransactionGroup(ctx context.Context, groupID string, cardID string, amountChange decimal.Decimal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := applyCardAmountInTx(ctx, tx, cardID, amountChange, time.Now().UTC()); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM card_transactions WHERE group_id = $1;`, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete card transaction group %s: %w", groupID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete of card transaction group %s: %w", groupID, err)
	}
	return nil
}
