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

// PgxTransactionRepository persists transactions and keeps account balances in
// step with them. Every write locks the touched accounts FOR UPDATE, applies
// the row mutation and the balance deltas, and commits them as one unit.
type PgxTransactionRepository struct {
	pool     *pgxpool.Pool
	balancer portsrepo.AccountBalancer
}

// NewPgxTransactionRepository creates a new repository for transaction data.
func NewPgxTransactionRepository(pool *pgxpool.Pool, balancer portsrepo.AccountBalancer) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool, balancer: balancer}
}

const transactionColumns = `transaction_id, user_id, account_id, category_id, description, amount, kind, date, notes, created_at, last_updated_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.UserID,
		&txn.AccountID,
		&txn.CategoryID,
		&txn.Description,
		&txn.Amount,
		&txn.Kind,
		&txn.Date,
		&txn.Notes,
		&txn.CreatedAt,
		&txn.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// withBalances runs mutate inside a database transaction after locking every
// account named in changes. Lock, mutate, apply deltas, commit; any failure
// rolls the whole unit back.
func (r *PgxTransactionRepository) withBalances(ctx context.Context, changes map[string]decimal.Decimal, mutate func(pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	accountIDs := make([]string, 0, len(changes))
	for id := range changes {
		accountIDs = append(accountIDs, id)
	}
	if _, err := r.balancer.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return err
	}

	if err := mutate(tx); err != nil {
		return err
	}

	if err := r.balancer.ApplyBalanceChangesInTx(ctx, tx, changes, time.Now().UTC()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	return r.withBalances(ctx, balanceChanges, func(tx pgx.Tx) error {
		query := `
			INSERT INTO transactions (` + transactionColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
		`
		_, err := tx.Exec(ctx, query,
			txn.TransactionID,
			txn.UserID,
			txn.AccountID,
			txn.CategoryID,
			txn.Description,
			txn.Amount,
			txn.Kind,
			txn.Date,
			txn.Notes,
			txn.CreatedAt,
			txn.LastUpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, mapConstraintError(err))
		}
		return nil
	})
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	return r.withBalances(ctx, balanceChanges, func(tx pgx.Tx) error {
		query := `
			UPDATE transactions
			SET account_id = $2, category_id = $3, description = $4, amount = $5, kind = $6, date = $7, notes = $8, last_updated_at = $9
			WHERE transaction_id = $1;
		`
		tag, err := tx.Exec(ctx, query,
			txn.TransactionID,
			txn.AccountID,
			txn.CategoryID,
			txn.Description,
			txn.Amount,
			txn.Kind,
			txn.Date,
			txn.Notes,
			txn.LastUpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, mapConstraintError(err))
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal) error {
	return r.withBalances(ctx, balanceChanges, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
		if err != nil {
			return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []any{userID}

	addArg := func(clause string, v any) {
		args = append(args, v)
		query += fmt.Sprintf(clause, len(args))
	}
	if filter.AccountID != nil {
		addArg(` AND account_id = $%d`, *filter.AccountID)
	}
	if filter.CategoryID != nil {
		addArg(` AND category_id = $%d`, *filter.CategoryID)
	}
	if filter.Kind != nil {
		addArg(` AND kind = $%d`, *filter.Kind)
	}
	if filter.DateFrom != nil {
		addArg(` AND date >= $%d`, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addArg(` AND date <= $%d`, *filter.DateTo)
	}
	query += ` ORDER BY date DESC, created_at DESC`
	if filter.Limit > 0 {
		addArg(` LIMIT $%d`, filter.Limit)
	}
	query += `;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}
