package category

import (
	"log/slog"
)

type RepositoryAPI interface {
	GetAll() ([]*Category, error)
	GetByID(id int64) (*Category, error)
	Create(c *Category) error
	Delete(id int64) error
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

func (s *Service) ListCategories() ([]*Category, error) {
	categories, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, err
	}
	return categories, nil
}

func (s *Service) CreateCategory(dto CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c := &Category{Name: dto.Name}
	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create category", "error", err)
		return nil, err
	}

	s.logger.Info("category created", "category_id", c.ID, "name", c.Name)
	return c, nil
}

func (s *Service) DeleteCategory(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id)
		return err
	}
	return nil
}
