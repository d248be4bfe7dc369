package product_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/mercadinho/gestao/internal"
	"github.com/mercadinho/gestao/internal/core/events"
	"github.com/mercadinho/gestao/internal/product"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestProductService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Product Service Suite")
}

// MockRepository implements product.Repository for testing
type MockRepository struct {
	products   map[int64]*product.Product
	categories map[int64]string
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		products:   make(map[int64]*product.Product),
		categories: make(map[int64]string),
		nextID:     1,
	}
}

func (m *MockRepository) ListWithCategory() ([]*product.ProductWithCategory, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var rows []*product.ProductWithCategory
	for _, p := range m.products {
		row := &product.ProductWithCategory{Product: *p}
		if p.CategoryID != nil {
			if name, ok := m.categories[*p.CategoryID]; ok {
				row.CategoryName = &name
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (m *MockRepository) GetByID(id int64) (*product.Product, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	p, ok := m.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return p, nil
}

func (m *MockRepository) Create(p *product.Product) error {
	if m.shouldFail {
		return m.failError
	}
	p.ID = m.nextID
	m.nextID++
	m.products[p.ID] = p
	return nil
}

func (m *MockRepository) Update(p *product.Product) error {
	if m.shouldFail {
		return m.failError
	}
	if _, ok := m.products[p.ID]; !ok {
		return product.ErrProductNotFound
	}
	m.products[p.ID] = p
	return nil
}

func (m *MockRepository) Delete(id int64) error {
	if m.shouldFail {
		return m.failError
	}
	if _, ok := m.products[id]; !ok {
		return product.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *MockRepository) AdjustStock(id int64, delta int) (int, error) {
	if m.shouldFail {
		return 0, m.failError
	}
	p, ok := m.products[id]
	if !ok {
		return 0, product.ErrProductNotFound
	}
	p.Stock += delta
	if p.Stock < 0 {
		p.Stock = 0
	}
	return p.Stock, nil
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func int64Ptr(v int64) *int64     { return &v }

var _ = Describe("Product Service", func() {
	var (
		mockRepo *MockRepository
		service  *product.Service
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = product.NewService(mockRepo, logger)
	})

	Describe("CreateProduct", func() {
		It("should default stock to zero", func() {
			p, err := service.CreateProduct(product.CreateProductDTO{
				Name:  "Arroz",
				Price: floatPtr(25.0),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.ID).NotTo(BeZero())
			Expect(p.Stock).To(Equal(0))
		})

		It("should require a name", func() {
			_, err := service.CreateProduct(product.CreateProductDTO{Price: floatPtr(10)})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should require a price", func() {
			_, err := service.CreateProduct(product.CreateProductDTO{Name: "Arroz"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should reject a malformed expiry date instead of defaulting it", func() {
			_, err := service.CreateProduct(product.CreateProductDTO{
				Name:       "Leite",
				Price:      floatPtr(5.5),
				ExpiryDate: "30/12/2026",
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should accept an ISO expiry date", func() {
			p, err := service.CreateProduct(product.CreateProductDTO{
				Name:       "Leite",
				Price:      floatPtr(5.5),
				ExpiryDate: "2026-12-30",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.ExpiryDate).NotTo(BeNil())
			Expect(p.ExpiryDate.Format("2006-01-02")).To(Equal("2026-12-30"))
		})
	})

	Describe("ListProducts", func() {
		BeforeEach(func() {
			mockRepo.categories[1] = "Bebidas"
			_, err := service.CreateProduct(product.CreateProductDTO{
				Name:       "Suco",
				Price:      floatPtr(8.0),
				CategoryID: int64Ptr(1),
			})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CreateProduct(product.CreateProductDTO{
				Name:  "Arroz",
				Price: floatPtr(25.0),
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should resolve the category name and fall back for uncategorized items", func() {
			responses, err := service.ListProducts()
			Expect(err).NotTo(HaveOccurred())
			Expect(responses).To(HaveLen(2))

			byName := map[string]string{}
			for _, resp := range responses {
				byName[resp.Name] = resp.CategoryName
			}
			Expect(byName["Suco"]).To(Equal("Bebidas"))
			Expect(byName["Arroz"]).To(Equal(product.NoCategoryLabel))
		})

		It("should collapse a nil cost to zero", func() {
			responses, err := service.ListProducts()
			Expect(err).NotTo(HaveOccurred())
			for _, resp := range responses {
				Expect(resp.Cost).To(Equal(0.0))
			}
		})
	})

	Describe("UpdateProduct", func() {
		var id int64

		BeforeEach(func() {
			p, err := service.CreateProduct(product.CreateProductDTO{
				Name:  "Feijão",
				Price: floatPtr(12.0),
				Stock: intPtr(10),
			})
			Expect(err).NotTo(HaveOccurred())
			id = p.ID
		})

		It("should keep unspecified fields", func() {
			updated, err := service.UpdateProduct(id, product.UpdateProductDTO{
				Price: floatPtr(13.5),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Feijão"))
			Expect(updated.Price).To(Equal(13.5))
			Expect(updated.Stock).To(Equal(10))
		})

		It("should fail with not found for an unknown id instead of upserting", func() {
			_, err := service.UpdateProduct(999, product.UpdateProductDTO{Price: floatPtr(1)})
			Expect(err).To(MatchError(product.ErrProductNotFound))
			Expect(mockRepo.products).To(HaveLen(1))
		})
	})

	Describe("DeleteProduct", func() {
		It("should fail with not found for an unknown id", func() {
			Expect(service.DeleteProduct(999)).To(MatchError(product.ErrProductNotFound))
		})
	})

	Describe("Sale events", func() {
		var bus *events.EventBus

		BeforeEach(func() {
			bus = events.NewEventBus(logger)
			service.RegisterEventHandlers(bus)
		})

		It("should decrement stock when a sale is recorded", func() {
			p, err := service.CreateProduct(product.CreateProductDTO{
				Name:  "Café",
				Price: floatPtr(18.0),
				Stock: intPtr(5),
			})
			Expect(err).NotTo(HaveOccurred())

			event := events.NewSaleRecordedEvent(1, p.ID, 2)
			Expect(bus.PublishSync(context.Background(), event)).To(Succeed())
			Expect(mockRepo.products[p.ID].Stock).To(Equal(3))
		})

		It("should clamp stock at zero on oversell", func() {
			p, err := service.CreateProduct(product.CreateProductDTO{
				Name:  "Café",
				Price: floatPtr(18.0),
				Stock: intPtr(1),
			})
			Expect(err).NotTo(HaveOccurred())

			event := events.NewSaleRecordedEvent(1, p.ID, 10)
			Expect(bus.PublishSync(context.Background(), event)).To(Succeed())
			Expect(mockRepo.products[p.ID].Stock).To(Equal(0))
		})

		It("should propagate a failing stock adjustment", func() {
			event := events.NewSaleRecordedEvent(1, 999, 1)
			Expect(bus.PublishSync(context.Background(), event)).To(HaveOccurred())
		})
	})

	Describe("repository failures", func() {
		BeforeEach(func() {
			mockRepo.shouldFail = true
			mockRepo.failError = errors.New("database error")
		})

		It("should surface list errors", func() {
			_, err := service.ListProducts()
			Expect(err).To(MatchError(ContainSubstring("database error")))
		})
	})
})
