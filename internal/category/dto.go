package category

import (
	"strings"

	"github.com/ErdhyErnando/moneta/internal"
	categoryDatamodel "github.com/ErdhyErnando/moneta/internal/core/datamodel/category"
)

// CreateCategoryDTO is the request payload for creating a category.
type CreateCategoryDTO struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (dto *CreateCategoryDTO) Validate() error {
	dto.Name = strings.TrimSpace(dto.Name)
	if dto.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if !categoryDatamodel.ValidType(dto.Type) {
		return ErrInvalidType
	}
	return nil
}

type CategoriesResponse struct {
	Categories []*Category `json:"categories"`
}
