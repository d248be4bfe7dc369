package postgres

import (
	"errors"

	"github.com/mercadinho/gestao/internal/supplier"
	"gorm.io/gorm"
)

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) supplier.RepositoryAPI {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) GetAll() ([]*supplier.Supplier, error) {
	var suppliers []*supplier.Supplier
	err := r.db.Order("id ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *SupplierRepository) GetByID(id int64) (*supplier.Supplier, error) {
	var s supplier.Supplier
	err := r.db.Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, supplier.ErrSupplierNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepository) Create(s *supplier.Supplier) error {
	return r.db.Create(s).Error
}

func (r *SupplierRepository) Update(s *supplier.Supplier) error {
	return r.db.Save(s).Error
}

func (r *SupplierRepository) Delete(id int64) error {
	result := r.db.Delete(&supplier.Supplier{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return supplier.ErrSupplierNotFound
	}
	return nil
}
