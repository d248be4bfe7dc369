package postgres

import (
	"errors"

	"github.com/mercadinho/gestao/internal/product"
	"gorm.io/gorm"
)

// ProductRepository implements product.Repository using GORM.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) product.Repository {
	return &ProductRepository{db: db}
}

// listRow mirrors the joined select; categoria_nome comes from the LEFT
// JOIN and is nil for uncategorized products.
type listRow struct {
	product.Product
	CategoryName *string `gorm:"column:categoria_nome"`
}

func (r *ProductRepository) ListWithCategory() ([]*product.ProductWithCategory, error) {
	var rows []listRow
	err := r.db.Table("produtos").
		Select("produtos.*, categoria.nome AS categoria_nome").
		Joins("LEFT JOIN categoria ON categoria.id = produtos.categoria_id").
		Order("produtos.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]*product.ProductWithCategory, 0, len(rows))
	for i := range rows {
		result = append(result, &product.ProductWithCategory{
			Product:      rows[i].Product,
			CategoryName: rows[i].CategoryName,
		})
	}
	return result, nil
}

func (r *ProductRepository) GetByID(id int64) (*product.Product, error) {
	var p product.Product
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(p *product.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) Update(p *product.Product) error {
	return r.db.Save(p).Error
}

func (r *ProductRepository) Delete(id int64) error {
	result := r.db.Delete(&product.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// AdjustStock applies a delta and clamps the result at zero. The adjustment
// is a single UPDATE, so concurrent sales of the same product never lose a
// decrement. Returns the remaining stock.
func (r *ProductRepository) AdjustStock(id int64, delta int) (int, error) {
	var remaining int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&product.Product{}).
			Where("id = ?", id).
			Update("estoque", gorm.Expr(
				"CASE WHEN estoque + ? < 0 THEN 0 ELSE estoque + ? END", delta, delta))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return product.ErrProductNotFound
		}

		var p product.Product
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		remaining = p.Stock
		return nil
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}
