package sale_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/mercadinho/gestao/internal"
	"github.com/mercadinho/gestao/internal/core/events"
	"github.com/mercadinho/gestao/internal/product"
	"github.com/mercadinho/gestao/internal/sale"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSaleService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Sale Service Suite")
}

// MockRepository implements sale.RepositoryAPI for testing
type MockRepository struct {
	sales  map[int64]*sale.Sale
	names  map[int64]string
	nextID int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		sales:  make(map[int64]*sale.Sale),
		names:  make(map[int64]string),
		nextID: 1,
	}
}

func (m *MockRepository) ListWithProduct() ([]*sale.SaleWithProduct, error) {
	var rows []*sale.SaleWithProduct
	for _, s := range m.sales {
		rows = append(rows, &sale.SaleWithProduct{
			Sale:        *s,
			ProductName: m.names[s.ProductID],
		})
	}
	return rows, nil
}

func (m *MockRepository) Create(s *sale.Sale) error {
	s.ID = m.nextID
	m.nextID++
	m.sales[s.ID] = s
	return nil
}

func (m *MockRepository) Delete(id int64) error {
	if _, ok := m.sales[id]; !ok {
		return sale.ErrSaleNotFound
	}
	delete(m.sales, id)
	return nil
}

// MockCatalog implements sale.ProductCatalog for testing
type MockCatalog struct {
	products map[int64]*product.Product
}

func (m *MockCatalog) GetByID(id int64) (*product.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return p, nil
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

var _ = Describe("Sale Service", func() {
	var (
		mockRepo *MockRepository
		catalog  *MockCatalog
		bus      *events.EventBus
		service  *sale.Service
		recorded []events.SaleRecordedEvent
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		mockRepo = NewMockRepository()
		catalog = &MockCatalog{products: map[int64]*product.Product{
			1: {ID: 1, Name: "Arroz", Price: 25.0, Stock: 10},
		}}
		mockRepo.names[1] = "Arroz"

		recorded = nil
		bus = events.NewEventBus(logger)
		bus.Subscribe(events.EventTypeSaleRecorded, func(ctx context.Context, event events.Event) error {
			recorded = append(recorded, event.(events.SaleRecordedEvent))
			return nil
		})

		service = sale.NewService(mockRepo, catalog, bus, logger)
	})

	Describe("RecordSale", func() {
		It("should persist the sale and publish the recorded event", func() {
			s, err := service.RecordSale(context.Background(), sale.CreateSaleDTO{
				ProductID: int64Ptr(1),
				Quantity:  intPtr(3),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.ID).NotTo(BeZero())
			Expect(s.SoldAt).NotTo(BeZero())

			Expect(recorded).To(HaveLen(1))
			Expect(recorded[0].ProductID).To(Equal(int64(1)))
			Expect(recorded[0].Quantity).To(Equal(3))
		})

		It("should fail with not found for an unknown product", func() {
			_, err := service.RecordSale(context.Background(), sale.CreateSaleDTO{
				ProductID: int64Ptr(999),
				Quantity:  intPtr(1),
			})
			Expect(err).To(MatchError(product.ErrProductNotFound))
			Expect(mockRepo.sales).To(BeEmpty())
			Expect(recorded).To(BeEmpty())
		})

		It("should require a product id", func() {
			_, err := service.RecordSale(context.Background(), sale.CreateSaleDTO{Quantity: intPtr(1)})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should reject a non-positive quantity", func() {
			_, err := service.RecordSale(context.Background(), sale.CreateSaleDTO{
				ProductID: int64Ptr(1),
				Quantity:  intPtr(0),
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should honor an explicit timestamp", func() {
			s, err := service.RecordSale(context.Background(), sale.CreateSaleDTO{
				ProductID: int64Ptr(1),
				Quantity:  intPtr(1),
				SoldAt:    "2026-01-15T10:30:00Z",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.SoldAt).To(Equal(time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)))
		})

		It("should reject a malformed timestamp", func() {
			_, err := service.RecordSale(context.Background(), sale.CreateSaleDTO{
				ProductID: int64Ptr(1),
				Quantity:  intPtr(1),
				SoldAt:    "15/01/2026",
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("ListSales", func() {
		It("should denormalize the product name", func() {
			_, err := service.RecordSale(context.Background(), sale.CreateSaleDTO{
				ProductID: int64Ptr(1),
				Quantity:  intPtr(2),
			})
			Expect(err).NotTo(HaveOccurred())

			sales, err := service.ListSales()
			Expect(err).NotTo(HaveOccurred())
			Expect(sales).To(HaveLen(1))
			Expect(sales[0].ProductName).To(Equal("Arroz"))
			Expect(sales[0].Quantity).To(Equal(2))
		})
	})

	Describe("DeleteSale", func() {
		It("should fail with not found for an unknown id", func() {
			Expect(service.DeleteSale(999)).To(MatchError(sale.ErrSaleNotFound))
		})
	})
})
