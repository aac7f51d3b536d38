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

type PgxBudgetRepository struct {
	pool *pgxpool.Pool
}

// NewPgxBudgetRepository creates a new repository for budget data.
func NewPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{pool: pool}
}

func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		INSERT INTO budgets (budget_id, user_id, category_id, month, year, amount, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		budget.BudgetID,
		budget.UserID,
		budget.CategoryID,
		budget.Month,
		budget.Year,
		budget.Amount,
		budget.CreatedAt,
		budget.LastUpdatedAt,
	)
	if err != nil {
		// Unique (user_id, category_id, month, year) surfaces as ErrDuplicate.
		return fmt.Errorf("failed to insert budget %s: %w", budget.BudgetID, mapConstraintError(err))
	}
	return nil
}

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `
		SELECT budget_id, user_id, category_id, month, year, amount, created_at, last_updated_at
		FROM budgets
		WHERE budget_id = $1;
	`
	var budget domain.Budget
	err := r.pool.QueryRow(ctx, query, budgetID).Scan(
		&budget.BudgetID,
		&budget.UserID,
		&budget.CategoryID,
		&budget.Month,
		&budget.Year,
		&budget.Amount,
		&budget.CreatedAt,
		&budget.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget by ID %s: %w", budgetID, err)
	}
	return &budget, nil
}

// ListBudgetUsage joins each of the month's budgets with the expense total its
// category accumulated over that calendar month.
func (r *PgxBudgetRepository) ListBudgetUsage(ctx context.Context, userID string, month int, year int) ([]domain.BudgetUsage, error) {
	query := `
		SELECT b.budget_id, b.user_id, b.category_id, b.month, b.year, b.amount, b.created_at, b.last_updated_at,
		       COALESCE(SUM(t.amount) FILTER (WHERE t.kind = 'EXPENSE'), 0) AS spent
		FROM budgets b
		LEFT JOIN transactions t
		       ON t.category_id = b.category_id
		      AND t.user_id = b.user_id
		      AND EXTRACT(MONTH FROM t.date) = b.month
		      AND EXTRACT(YEAR FROM t.date) = b.year
		WHERE b.user_id = $1 AND b.month = $2 AND b.year = $3
		GROUP BY b.budget_id
		ORDER BY b.created_at;
	`
	rows, err := r.pool.Query(ctx, query, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget usage for user %s: %w", userID, err)
	}
	defer rows.Close()

	usages := []domain.BudgetUsage{}
	for rows.Next() {
		var u domain.BudgetUsage
		if err := rows.Scan(
			&u.BudgetID,
			&u.UserID,
			&u.CategoryID,
			&u.Month,
			&u.Year,
			&u.Amount,
			&u.CreatedAt,
			&u.LastUpdatedAt,
			&u.Spent,
		); err != nil {
			return nil, fmt.Errorf("failed to scan budget usage row: %w", err)
		}
		usages = append(usages, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget usage rows: %w", err)
	}
	return usages, nil
}

func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	// Category, month and year are fixed at creation; only the planned amount
	// moves.
	query := `
		UPDATE budgets
		SET amount = $2, last_updated_at = $3
		WHERE budget_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, budget.BudgetID, budget.Amount, budget.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update budget %s: %w", budget.BudgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
