package postgres

import (
	"errors"

	"github.com/mercadinho/gestao/internal/client"
	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) client.RepositoryAPI {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) GetAll() ([]*client.Client, error) {
	var clients []*client.Client
	err := r.db.Order("id ASC").Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) GetByID(id int64) (*client.Client, error) {
	var c client.Client
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, client.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) Create(c *client.Client) error {
	return r.db.Create(c).Error
}

func (r *ClientRepository) Update(c *client.Client) error {
	return r.db.Save(c).Error
}

func (r *ClientRepository) Delete(id int64) error {
	result := r.db.Delete(&client.Client{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return client.ErrClientNotFound
	}
	return nil
}
