package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/centavoapp/centavo/internal/core/domain"
	portsrepo "github.com/centavoapp/centavo/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// NewPgxReportingRepository creates a new repository for reporting aggregations.
func NewPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{pool: pool}
}

func periodClause(args *[]any, from, to *time.Time) string {
	clause := ""
	if from != nil {
		*args = append(*args, *from)
		clause += fmt.Sprintf(" AND date >= $%d", len(*args))
	}
	if to != nil {
		*args = append(*args, *to)
		clause += fmt.Sprintf(" AND date <= $%d", len(*args))
	}
	return clause
}

func (r *PgxReportingRepository) GetSummary(ctx context.Context, userID string, from *time.Time, to *time.Time) (*domain.Summary, error) {
	args := []any{userID}
	query := `
		SELECT COALESCE(SUM(amount) FILTER (WHERE kind = 'INCOME'), 0) AS income,
		       COALESCE(SUM(amount) FILTER (WHERE kind = 'EXPENSE'), 0) AS expense
		FROM transactions
		WHERE user_id = $1` + periodClause(&args, from, to) + `;`

	var summary domain.Summary
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&summary.Income, &summary.Expense); err != nil {
		return nil, fmt.Errorf("failed to query summary for user %s: %w", userID, err)
	}
	summary.Net = summary.Income.Sub(summary.Expense)
	return &summary, nil
}

func (r *PgxReportingRepository) GetExpenseByCategory(ctx context.Context, userID string, from *time.Time, to *time.Time) ([]domain.CategoryAmount, error) {
	args := []any{userID}
	query := `
		SELECT c.category_id, c.name, COALESCE(SUM(t.amount), 0) AS amount
		FROM transactions t
		JOIN categories c ON c.category_id = t.category_id
		WHERE t.user_id = $1 AND t.kind = 'EXPENSE'` + periodClauseAliased(&args, from, to) + `
		GROUP BY c.category_id, c.name
		ORDER BY amount DESC;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense breakdown for user %s: %w", userID, err)
	}
	defer rows.Close()

	breakdown := []domain.CategoryAmount{}
	for rows.Next() {
		var row domain.CategoryAmount
		if err := rows.Scan(&row.CategoryID, &row.Name, &row.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense breakdown row: %w", err)
		}
		breakdown = append(breakdown, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense breakdown rows: %w", err)
	}
	return breakdown, nil
}

func periodClauseAliased(args *[]any, from, to *time.Time) string {
	clause := ""
	if from != nil {
		*args = append(*args, *from)
		clause += fmt.Sprintf(" AND t.date >= $%d", len(*args))
	}
	if to != nil {
		*args = append(*args, *to)
		clause += fmt.Sprintf(" AND t.date <= $%d", len(*args))
	}
	return clause
}
