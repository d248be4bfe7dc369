package postgres_test

import (
	"testing"

	"github.com/mercadinho/gestao/internal/product"
	productPostgres "github.com/mercadinho/gestao/internal/product/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestProductPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Product Postgres Suite")
}

// SQLiteCategory is a SQLite-compatible model for testing the join
type SQLiteCategory struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:nome;not null"`
}

func (SQLiteCategory) TableName() string {
	return "categoria"
}

func floatPtr(v float64) *float64 { return &v }
func int64Ptr(v int64) *int64     { return &v }

var _ = Describe("Product Repository", func() {
	var (
		db   *gorm.DB
		repo product.Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.AutoMigrate(&SQLiteCategory{}, &product.Product{})).To(Succeed())

		repo = productPostgres.NewProductRepository(db)
	})

	Describe("Create and GetByID", func() {
		It("should persist and load a product", func() {
			p := &product.Product{Name: "Arroz", Price: 25.0, Stock: 3}
			Expect(repo.Create(p)).To(Succeed())
			Expect(p.ID).NotTo(BeZero())

			loaded, err := repo.GetByID(p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Name).To(Equal("Arroz"))
			Expect(loaded.Stock).To(Equal(3))
		})

		It("should return not found for an unknown id", func() {
			_, err := repo.GetByID(999)
			Expect(err).To(MatchError(product.ErrProductNotFound))
		})
	})

	Describe("ListWithCategory", func() {
		BeforeEach(func() {
			Expect(db.Create(&SQLiteCategory{ID: 1, Name: "Bebidas"}).Error).To(Succeed())
			Expect(repo.Create(&product.Product{Name: "Suco", Price: 8.0, CategoryID: int64Ptr(1)})).To(Succeed())
			Expect(repo.Create(&product.Product{Name: "Arroz", Price: 25.0})).To(Succeed())
		})

		It("should join the category name and leave it nil when absent", func() {
			rows, err := repo.ListWithCategory()
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))

			Expect(rows[0].Name).To(Equal("Suco"))
			Expect(rows[0].CategoryName).NotTo(BeNil())
			Expect(*rows[0].CategoryName).To(Equal("Bebidas"))

			Expect(rows[1].Name).To(Equal("Arroz"))
			Expect(rows[1].CategoryName).To(BeNil())
		})

		It("should order by id ascending", func() {
			rows, err := repo.ListWithCategory()
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].ID).To(BeNumerically("<", rows[1].ID))
		})
	})

	Describe("Update", func() {
		It("should persist changed fields", func() {
			p := &product.Product{Name: "Feijão", Price: 12.0}
			Expect(repo.Create(p)).To(Succeed())

			p.Price = 13.5
			p.Cost = floatPtr(9.0)
			Expect(repo.Update(p)).To(Succeed())

			loaded, err := repo.GetByID(p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Price).To(Equal(13.5))
			Expect(*loaded.Cost).To(Equal(9.0))
		})
	})

	Describe("Delete", func() {
		It("should remove the row", func() {
			p := &product.Product{Name: "Feijão", Price: 12.0}
			Expect(repo.Create(p)).To(Succeed())
			Expect(repo.Delete(p.ID)).To(Succeed())

			_, err := repo.GetByID(p.ID)
			Expect(err).To(MatchError(product.ErrProductNotFound))
		})

		It("should return not found for an unknown id", func() {
			Expect(repo.Delete(999)).To(MatchError(product.ErrProductNotFound))
		})
	})

	Describe("AdjustStock", func() {
		It("should apply the delta and return the remaining stock", func() {
			p := &product.Product{Name: "Café", Price: 18.0, Stock: 5}
			Expect(repo.Create(p)).To(Succeed())

			remaining, err := repo.AdjustStock(p.ID, -2)
			Expect(err).NotTo(HaveOccurred())
			Expect(remaining).To(Equal(3))

			loaded, err := repo.GetByID(p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Stock).To(Equal(3))
		})

		It("should accumulate consecutive decrements", func() {
			p := &product.Product{Name: "Café", Price: 18.0, Stock: 5}
			Expect(repo.Create(p)).To(Succeed())

			_, err := repo.AdjustStock(p.ID, -2)
			Expect(err).NotTo(HaveOccurred())
			remaining, err := repo.AdjustStock(p.ID, -2)
			Expect(err).NotTo(HaveOccurred())
			Expect(remaining).To(Equal(1))
		})

		It("should clamp at zero", func() {
			p := &product.Product{Name: "Café", Price: 18.0, Stock: 1}
			Expect(repo.Create(p)).To(Succeed())

			remaining, err := repo.AdjustStock(p.ID, -10)
			Expect(err).NotTo(HaveOccurred())
			Expect(remaining).To(Equal(0))
		})

		It("should return not found for an unknown id", func() {
			_, err := repo.AdjustStock(999, -1)
			Expect(err).To(MatchError(product.ErrProductNotFound))
		})
	})
})
