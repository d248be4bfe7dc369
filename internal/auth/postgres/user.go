package postgres

import (
	"errors"
	"time"

	"github.com/mercadinho/gestao/internal/auth"
	"gorm.io/gorm"
)

// UserRepository implements auth.UserRepository over the usuarios table.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) auth.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(email string) (*auth.User, error) {
	var user auth.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(user *auth.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) UpdatePassword(email, passwordHash string, changedAt time.Time) error {
	result := r.db.Model(&auth.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"senha_hash":        passwordHash,
			"senha_alterada_em": changedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}
