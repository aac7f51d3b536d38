package repositories

import (
	"context"

	"github.com/centavoapp/centavo/internal/core/domain"
)

// CategoryReader defines read operations for category data.
type CategoryReader interface {
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategoriesByUser lists a user's categories, optionally filtered by kind.
	ListCategoriesByUser(ctx context.Context, userID string, kind *domain.EntryKind) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data.
type CategoryWriter interface {
	// SaveCategory returns ErrDuplicate when (name, kind, user) already exists.
	SaveCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory removes the category and cascades to its budgets.
	DeleteCategory(ctx context.Context, categoryID string) error
}

// CategoryRepositoryFacade combines all category repository interfaces.
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
