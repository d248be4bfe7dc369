package product

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mercadinho/gestao/internal/core/events"
)

// Repository defines the data access methods for products.
type Repository interface {
	ListWithCategory() ([]*ProductWithCategory, error)
	GetByID(id int64) (*Product, error)
	Create(p *Product) error
	Update(p *Product) error
	Delete(id int64) error
	AdjustStock(id int64, delta int) (int, error)
}

// ProductWithCategory is the list row with the category name joined in.
type ProductWithCategory struct {
	Product
	CategoryName *string
}

// Service handles product business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListProducts returns all products in id order, serialized with their
// category name resolved.
func (s *Service) ListProducts() ([]ProductResponse, error) {
	rows, err := s.repo.ListWithCategory()
	if err != nil {
		s.logger.Error("failed to list products", "error", err)
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, row.ToResponse())
	}
	return responses, nil
}

func (row *ProductWithCategory) ToResponse() ProductResponse {
	categoryName := NoCategoryLabel
	if row.CategoryName != nil && *row.CategoryName != "" {
		categoryName = *row.CategoryName
	}

	cost := 0.0
	if row.Cost != nil {
		cost = *row.Cost
	}

	return ProductResponse{
		ID:           row.ID,
		Name:         row.Name,
		Code:         row.Code,
		CategoryID:   row.CategoryID,
		CategoryName: categoryName,
		Price:        row.Price,
		Cost:         cost,
		Stock:        row.Stock,
		ExpiryDate:   formatExpiry(row.ExpiryDate),
		Description:  row.Description,
		Status:       row.Status,
	}
}

func (s *Service) CreateProduct(dto CreateProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("product validation failed", "error", err)
		return nil, err
	}

	p := dto.ToProduct()
	if err := s.repo.Create(p); err != nil {
		s.logger.Error("failed to create product", "error", err)
		return nil, err
	}

	s.logger.Info("product created", "product_id", p.ID, "name", p.Name)
	return p, nil
}

// UpdateProduct applies a partial update. Unknown ids fail with not found,
// never an upsert.
func (s *Service) UpdateProduct(id int64, dto UpdateProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("product validation failed", "error", err, "product_id", id)
		return nil, err
	}

	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	dto.ApplyTo(p)
	if err := s.repo.Update(p); err != nil {
		s.logger.Error("failed to update product", "error", err, "product_id", id)
		return nil, err
	}

	s.logger.Info("product updated", "product_id", id)
	return p, nil
}

func (s *Service) DeleteProduct(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete product", "error", err, "product_id", id)
		return err
	}

	s.logger.Info("product deleted", "product_id", id)
	return nil
}

// RegisterEventHandlers subscribes the stock ledger to recorded sales.
func (s *Service) RegisterEventHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeSaleRecorded, s.handleSaleRecorded)
}

// handleSaleRecorded decrements stock for the sold product. Stock is
// clamped at zero: an oversell logs a warning instead of driving the
// inventory negative.
func (s *Service) handleSaleRecorded(ctx context.Context, event events.Event) error {
	sale, ok := event.(events.SaleRecordedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	remaining, err := s.repo.AdjustStock(sale.ProductID, -sale.Quantity)
	if err != nil {
		s.logger.Error("failed to adjust stock after sale",
			"error", err,
			"sale_id", sale.SaleID,
			"product_id", sale.ProductID)
		return err
	}

	if remaining == 0 {
		s.logger.Warn("product stock depleted",
			"product_id", sale.ProductID,
			"sale_id", sale.SaleID)
	}

	s.logger.Info("stock adjusted after sale",
		"product_id", sale.ProductID,
		"sale_id", sale.SaleID,
		"quantity", sale.Quantity,
		"remaining", remaining)
	return nil
}
