package client

import (
	"log/slog"
)

type RepositoryAPI interface {
	GetAll() ([]*Client, error)
	GetByID(id int64) (*Client, error)
	Create(c *Client) error
	Update(c *Client) error
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

func (s *Service) ListClients() ([]*Client, error) {
	clients, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list clients", "error", err)
		return nil, err
	}
	return clients, nil
}

func (s *Service) CreateClient(dto CreateClientDTO) (*Client, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c := dto.ToClient()
	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create client", "error", err)
		return nil, err
	}

	s.logger.Info("client created", "client_id", c.ID)
	return c, nil
}

func (s *Service) UpdateClient(id int64, dto UpdateClientDTO) (*Client, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	dto.ApplyTo(c)
	if err := s.repo.Update(c); err != nil {
		s.logger.Error("failed to update client", "error", err, "client_id", id)
		return nil, err
	}
	return c, nil
}

func (s *Service) DeleteClient(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete client", "error", err, "client_id", id)
		return err
	}
	return nil
}
