package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/centavoapp/centavo/internal/apperrors"
	"github.com/centavoapp/centavo/internal/core/domain"
	portsrepo "github.com/centavoapp/centavo/internal/core/ports/repositories"
)

type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCategoryRepository creates a new repository for category data.
func NewPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{pool: pool}
}

const categoryColumns = `category_id, user_id, name, kind, color, icon, created_at, last_updated_at`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var category domain.Category
	err := row.Scan(
		&category.CategoryID,
		&category.UserID,
		&category.Name,
		&category.Kind,
		&category.Color,
		&category.Icon,
		&category.CreatedAt,
		&category.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		category.CategoryID,
		category.UserID,
		category.Name,
		category.Kind,
		category.Color,
		category.Icon,
		category.CreatedAt,
		category.LastUpdatedAt,
	)
	if err != nil {
		// Unique (user_id, name, kind) surfaces as ErrDuplicate here.
		return fmt.Errorf("failed to insert category %s: %w", category.CategoryID, mapConstraintError(err))
	}
	return nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`
	category, err := scanCategory(r.pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}
	return category, nil
}

func (r *PgxCategoryRepository) ListCategoriesByUser(ctx context.Context, userID string, kind *domain.EntryKind) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1`
	args := []any{userID}
	if kind != nil {
		query += ` AND kind = $2`
		args = append(args, *kind)
	}
	query += ` ORDER BY name;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories for user %s: %w", userID, err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	// Kind is immutable once set; rewriting it would silently flip the sign of
	// every transaction classified under the category.
	query := `
		UPDATE categories
		SET name = $2, color = $3, icon = $4, last_updated_at = $5
		WHERE category_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		category.CategoryID,
		category.Name,
		category.Color,
		category.Icon,
		category.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", category.CategoryID, mapConstraintError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	// Budgets referencing the category go with it via ON DELETE CASCADE.
	// Transactions RESTRICT instead: a category still in use cannot be removed.
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("category %s is still referenced: %w", categoryID, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
