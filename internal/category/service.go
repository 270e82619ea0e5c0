package category

import (
	"log/slog"

	categoryDatamodel "github.com/ErdhyErnando/moneta/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	GetAll() ([]*categoryDatamodel.Category, error)
	GetByID(id int64) (*categoryDatamodel.Category, error)
	GetByName(name string) (*categoryDatamodel.Category, error)
	Create(category *categoryDatamodel.Category) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetAllCategories returns every category, name-sorted by the repository.
func (s *Service) GetAllCategories() ([]*Category, error) {
	dataCategories, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err)
		return nil, err
	}

	categories := make([]*Category, 0, len(dataCategories))
	for _, dc := range dataCategories {
		categories = append(categories, FromDataModel(dc))
	}

	return categories, nil
}

// CreateCategory creates a new typed category. The type is immutable after
// creation and duplicate names are rejected.
func (s *Service) CreateCategory(dto *CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("category validation failed", "error", err, "name", dto.Name)
		return nil, err
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		s.logger.Error("failed to check category name", "error", err, "name", dto.Name)
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}

	dataCategory := &categoryDatamodel.Category{
		Name: dto.Name,
		Type: dto.Type,
	}
	if err := s.repo.Create(dataCategory); err != nil {
		s.logger.Error("failed to create category", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("category created", "category_id", dataCategory.ID, "name", dataCategory.Name, "type", dataCategory.Type)
	return FromDataModel(dataCategory), nil
}

// GetCategoryByID returns the category or ErrCategoryNotFound.
func (s *Service) GetCategoryByID(id int64) (*Category, error) {
	dataCategory, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get category", "error", err, "category_id", id)
		return nil, err
	}
	if dataCategory == nil {
		return nil, ErrCategoryNotFound
	}
	return FromDataModel(dataCategory), nil
}
