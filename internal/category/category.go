package category

import (
	"github.com/ErdhyErnando/moneta/internal"
	categoryDatamodel "github.com/ErdhyErnando/moneta/internal/core/datamodel/category"
)

// Category is the service-facing view of a grouping tag.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

var (
	ErrCategoryNotFound = internal.NewNotFoundError("Category not found", internal.ErrCodeCategoryNotFound)
	ErrCategoryExists   = internal.NewConflictError("Category already exists", internal.ErrCodeCategoryExists)
	ErrInvalidType      = internal.NewValidationError("category type must be income, expense or starting_balance", internal.ErrCodeInvalidKind)
)

func FromDataModel(c *categoryDatamodel.Category) *Category {
	return &Category{
		ID:   c.ID,
		Name: c.Name,
		Type: c.Type,
	}
}

func ToDataModel(c *Category) *categoryDatamodel.Category {
	return &categoryDatamodel.Category{
		ID:   c.ID,
		Name: c.Name,
		Type: c.Type,
	}
}
