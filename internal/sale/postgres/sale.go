package postgres

import (
	"github.com/mercadinho/gestao/internal/sale"
	"gorm.io/gorm"
)

type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) sale.RepositoryAPI {
	return &SaleRepository{db: db}
}

type listRow struct {
	sale.Sale
	ProductName string `gorm:"column:produto_nome"`
}

func (r *SaleRepository) ListWithProduct() ([]*sale.SaleWithProduct, error) {
	var rows []listRow
	err := r.db.
		Table("venda").
		Select("venda.*, produtos.nome AS produto_nome").
		Joins("JOIN produtos ON produtos.id = venda.produto_id").
		Order("venda.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sales := make([]*sale.SaleWithProduct, 0, len(rows))
	for _, row := range rows {
		sales = append(sales, &sale.SaleWithProduct{
			Sale:        row.Sale,
			ProductName: row.ProductName,
		})
	}
	return sales, nil
}

func (r *SaleRepository) Create(s *sale.Sale) error {
	return r.db.Create(s).Error
}

func (r *SaleRepository) Delete(id int64) error {
	result := r.db.Delete(&sale.Sale{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return sale.ErrSaleNotFound
	}
	return nil
}
