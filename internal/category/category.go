package category

import (
	"github.com/mercadinho/gestao/internal"
)

type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"nome" gorm:"column:nome;not null"`
}

func (Category) TableName() string {
	return "categoria"
}

type CreateCategoryDTO struct {
	Name string `json:"nome"`
}

func (dto CreateCategoryDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationFieldError("nome", "nome é obrigatório", internal.ErrCodeMissingField)
	}
	return nil
}

var ErrCategoryNotFound = internal.NewNotFoundError("Categoria não encontrada", internal.ErrCodeCategoryNotFound)
