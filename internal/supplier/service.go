package supplier

import (
	"log/slog"
)

type RepositoryAPI interface {
	GetAll() ([]*Supplier, error)
	GetByID(id int64) (*Supplier, error)
	Create(s *Supplier) error
	Update(s *Supplier) error
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

func (s *Service) ListSuppliers() ([]*Supplier, error) {
	suppliers, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list suppliers", "error", err)
		return nil, err
	}
	return suppliers, nil
}

func (s *Service) CreateSupplier(dto CreateSupplierDTO) (*Supplier, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	sp := dto.ToSupplier()
	if err := s.repo.Create(sp); err != nil {
		s.logger.Error("failed to create supplier", "error", err)
		return nil, err
	}

	s.logger.Info("supplier created", "supplier_id", sp.ID)
	return sp, nil
}

func (s *Service) UpdateSupplier(id int64, dto UpdateSupplierDTO) (*Supplier, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	sp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	dto.ApplyTo(sp)
	if err := s.repo.Update(sp); err != nil {
		s.logger.Error("failed to update supplier", "error", err, "supplier_id", id)
		return nil, err
	}
	return sp, nil
}

func (s *Service) DeleteSupplier(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete supplier", "error", err, "supplier_id", id)
		return err
	}
	return nil
}
