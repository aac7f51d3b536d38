package dto

import (
	"github.com/centavoapp/centavo/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a new category.
type CreateCategoryRequest struct {
	Name  string           `json:"name" binding:"required"`
	Kind  domain.EntryKind `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Color string           `json:"color"`
	Icon  string           `json:"icon"`
}

// UpdateCategoryRequest defines the fields allowed for updating a category.
// Kind is fixed at creation; repointing existing transactions from expense to
// income would silently flip their balance contributions.
type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

// IsEmpty reports whether no updatable field was provided.
func (r UpdateCategoryRequest) IsEmpty() bool {
	return r.Name == nil && r.Color == nil && r.Icon == nil
}

// ListCategoriesParams defines query parameters for listing categories.
type ListCategoriesParams struct {
	Kind *domain.EntryKind `form:"kind" binding:"omitempty,oneof=INCOME EXPENSE"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string           `json:"categoryID"`
	Name       string           `json:"name"`
	Kind       domain.EntryKind `json:"kind"`
	Color      string           `json:"color"`
	Icon       string           `json:"icon"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Kind:       c.Kind,
		Color:      c.Color,
		Icon:       c.Icon,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to response DTOs.
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}
