package sale

import (
	"time"

	"github.com/mercadinho/gestao/internal"
)

// Sale records a sold quantity of a product at a point in time.
type Sale struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ProductID int64     `json:"produto_id" gorm:"column:produto_id;not null"`
	Quantity  int       `json:"quantidade" gorm:"column:quantidade;not null"`
	SoldAt    time.Time `json:"data_venda" gorm:"column:data_venda"`
}

func (Sale) TableName() string {
	return "venda"
}

// SaleResponse is the list serialization with the product name joined in.
type SaleResponse struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"produto_id"`
	ProductName string `json:"produto_nome"`
	Quantity    int    `json:"quantidade"`
	SoldAt      string `json:"data_venda"`
}

type CreateSaleDTO struct {
	ProductID *int64 `json:"produto_id"`
	Quantity  *int   `json:"quantidade"`
	SoldAt    string `json:"data_venda"`
}

func (dto CreateSaleDTO) Validate() error {
	if dto.ProductID == nil {
		return internal.NewValidationFieldError("produto_id", "produto_id é obrigatório", internal.ErrCodeMissingField)
	}
	if dto.Quantity == nil {
		return internal.NewValidationFieldError("quantidade", "quantidade é obrigatória", internal.ErrCodeMissingField)
	}
	if *dto.Quantity <= 0 {
		return internal.NewValidationFieldError("quantidade", "quantidade deve ser maior que zero", internal.ErrCodeInvalidQuantity)
	}
	if dto.SoldAt != "" {
		if _, err := time.Parse(time.RFC3339, dto.SoldAt); err != nil {
			return internal.NewValidationFieldError("data_venda", "data_venda inválida, use o formato RFC 3339", internal.ErrCodeInvalidDate)
		}
	}
	return nil
}

// ToSale builds the record, defaulting the timestamp to now when absent.
func (dto CreateSaleDTO) ToSale(now time.Time) *Sale {
	soldAt := now
	if dto.SoldAt != "" {
		if parsed, err := time.Parse(time.RFC3339, dto.SoldAt); err == nil {
			soldAt = parsed
		}
	}
	return &Sale{
		ProductID: *dto.ProductID,
		Quantity:  *dto.Quantity,
		SoldAt:    soldAt,
	}
}

var ErrSaleNotFound = internal.NewNotFoundError("Venda não encontrada", internal.ErrCodeSaleNotFound)
