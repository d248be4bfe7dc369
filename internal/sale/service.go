package sale

import (
	"context"
	"log/slog"
	"time"

	"github.com/mercadinho/gestao/internal/core/events"
	"github.com/mercadinho/gestao/internal/product"
)

type RepositoryAPI interface {
	ListWithProduct() ([]*SaleWithProduct, error)
	Create(s *Sale) error
	Delete(id int64) error
}

// SaleWithProduct is the list row with the product name joined in.
type SaleWithProduct struct {
	Sale
	ProductName string
}

// ProductCatalog is the slice of the product store the sale service needs
// to confirm the sold product exists.
type ProductCatalog interface {
	GetByID(id int64) (*product.Product, error)
}

type Service struct {
	repo     RepositoryAPI
	products ProductCatalog
	bus      *events.EventBus
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(repo RepositoryAPI, products ProductCatalog, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		products: products,
		bus:      bus,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) ListSales() ([]SaleResponse, error) {
	rows, err := s.repo.ListWithProduct()
	if err != nil {
		s.logger.Error("failed to list sales", "error", err)
		return nil, err
	}

	responses := make([]SaleResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, SaleResponse{
			ID:          row.ID,
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			SoldAt:      row.SoldAt.Format(time.RFC3339),
		})
	}
	return responses, nil
}

// RecordSale persists the sale and publishes it so the stock ledger updates
// before the caller gets a reply.
func (s *Service) RecordSale(ctx context.Context, dto CreateSaleDTO) (*Sale, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("sale validation failed", "error", err)
		return nil, err
	}

	if _, err := s.products.GetByID(*dto.ProductID); err != nil {
		return nil, err
	}

	sale := dto.ToSale(s.now())
	if err := s.repo.Create(sale); err != nil {
		s.logger.Error("failed to record sale", "error", err)
		return nil, err
	}

	event := events.NewSaleRecordedEvent(sale.ID, sale.ProductID, sale.Quantity)
	if err := s.bus.PublishSync(ctx, event); err != nil {
		s.logger.Error("sale recorded but stock adjustment failed",
			"error", err,
			"sale_id", sale.ID,
			"product_id", sale.ProductID)
	}

	s.logger.Info("sale recorded",
		"sale_id", sale.ID,
		"product_id", sale.ProductID,
		"quantity", sale.Quantity)
	return sale, nil
}

func (s *Service) DeleteSale(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete sale", "error", err, "sale_id", id)
		return err
	}
	return nil
}
