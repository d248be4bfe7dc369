package product

import (
	"time"

	"github.com/mercadinho/gestao/internal"
)

// Product is an inventory item. Column and JSON names follow the pt-BR
// schema the frontend consumes.
type Product struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	Name        string     `json:"nome" gorm:"column:nome;not null"`
	Code        *string    `json:"codigo" gorm:"column:codigo"`
	CategoryID  *int64     `json:"categoria_id" gorm:"column:categoria_id"`
	Price       float64    `json:"preco" gorm:"column:preco;not null"`
	Cost        *float64   `json:"custo" gorm:"column:custo"`
	Stock       int        `json:"estoque" gorm:"column:estoque;default:0"`
	ExpiryDate  *time.Time `json:"validade" gorm:"column:validade;type:date"`
	Description *string    `json:"descricao" gorm:"column:descricao"`
	Status      *string    `json:"status" gorm:"column:status"`
}

func (Product) TableName() string {
	return "produtos"
}

// NoCategoryLabel is the denormalized category name for products without a
// category reference.
const NoCategoryLabel = "Sem Categoria"

// ProductResponse is the list/detail serialization: category name resolved,
// nullable numerics collapsed to 0.0, date as YYYY-MM-DD.
type ProductResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"nome"`
	Code         *string `json:"codigo"`
	CategoryID   *int64  `json:"categoria_id"`
	CategoryName string  `json:"categoria_nome"`
	Price        float64 `json:"preco"`
	Cost         float64 `json:"custo"`
	Stock        int     `json:"estoque"`
	ExpiryDate   *string `json:"validade"`
	Description  *string `json:"descricao"`
	Status       *string `json:"status"`
}

var (
	ErrProductNotFound = internal.NewNotFoundError("Produto não encontrado", internal.ErrCodeProductNotFound)
)
