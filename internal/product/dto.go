package product

import (
	"time"

	"github.com/mercadinho/gestao/internal"
)

const dateLayout = "2006-01-02"

// CreateProductDTO is the request payload for creating a product. Price is
// a pointer so a missing field is distinguishable from zero.
type CreateProductDTO struct {
	Name        string   `json:"nome"`
	Code        *string  `json:"codigo"`
	CategoryID  *int64   `json:"categoria_id"`
	Price       *float64 `json:"preco"`
	Cost        *float64 `json:"custo"`
	Stock       *int     `json:"estoque"`
	ExpiryDate  string   `json:"validade"`
	Description *string  `json:"descricao"`
	Status      *string  `json:"status"`
}

func (dto CreateProductDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationFieldError("nome", "nome é obrigatório", internal.ErrCodeMissingField)
	}
	if dto.Price == nil {
		return internal.NewValidationFieldError("preco", "preco é obrigatório", internal.ErrCodeMissingField)
	}
	if *dto.Price < 0 {
		return internal.NewValidationFieldError("preco", "preco não pode ser negativo", internal.ErrCodeInvalidPrice)
	}
	if dto.Stock != nil && *dto.Stock < 0 {
		return internal.NewValidationFieldError("estoque", "estoque não pode ser negativo", internal.ErrCodeInvalidQuantity)
	}
	if _, err := parseExpiry(dto.ExpiryDate); err != nil {
		return err
	}
	return nil
}

// ToProduct builds the entity with defaults applied: stock 0 when absent.
// Validate must have passed.
func (dto CreateProductDTO) ToProduct() *Product {
	stock := 0
	if dto.Stock != nil {
		stock = *dto.Stock
	}
	expiry, _ := parseExpiry(dto.ExpiryDate)
	return &Product{
		Name:        dto.Name,
		Code:        dto.Code,
		CategoryID:  dto.CategoryID,
		Price:       *dto.Price,
		Cost:        dto.Cost,
		Stock:       stock,
		ExpiryDate:  expiry,
		Description: dto.Description,
		Status:      dto.Status,
	}
}

// UpdateProductDTO carries a partial update: nil fields keep their stored
// value. ExpiryDate accepts "" to clear the date.
type UpdateProductDTO struct {
	Name        *string  `json:"nome"`
	Code        *string  `json:"codigo"`
	CategoryID  *int64   `json:"categoria_id"`
	Price       *float64 `json:"preco"`
	Cost        *float64 `json:"custo"`
	Stock       *int     `json:"estoque"`
	ExpiryDate  *string  `json:"validade"`
	Description *string  `json:"descricao"`
	Status      *string  `json:"status"`
}

func (dto UpdateProductDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return internal.NewValidationFieldError("nome", "nome não pode ser vazio", internal.ErrCodeMissingField)
	}
	if dto.Price != nil && *dto.Price < 0 {
		return internal.NewValidationFieldError("preco", "preco não pode ser negativo", internal.ErrCodeInvalidPrice)
	}
	if dto.Stock != nil && *dto.Stock < 0 {
		return internal.NewValidationFieldError("estoque", "estoque não pode ser negativo", internal.ErrCodeInvalidQuantity)
	}
	if dto.ExpiryDate != nil {
		if _, err := parseExpiry(*dto.ExpiryDate); err != nil {
			return err
		}
	}
	return nil
}

// ApplyTo copies the set fields onto the stored entity. Validate must have
// passed.
func (dto UpdateProductDTO) ApplyTo(p *Product) {
	if dto.Name != nil {
		p.Name = *dto.Name
	}
	if dto.Code != nil {
		p.Code = dto.Code
	}
	if dto.CategoryID != nil {
		p.CategoryID = dto.CategoryID
	}
	if dto.Price != nil {
		p.Price = *dto.Price
	}
	if dto.Cost != nil {
		p.Cost = dto.Cost
	}
	if dto.Stock != nil {
		p.Stock = *dto.Stock
	}
	if dto.ExpiryDate != nil {
		expiry, _ := parseExpiry(*dto.ExpiryDate)
		p.ExpiryDate = expiry
	}
	if dto.Description != nil {
		p.Description = dto.Description
	}
	if dto.Status != nil {
		p.Status = dto.Status
	}
}

// parseExpiry parses an ISO YYYY-MM-DD date. Empty means no expiry; a
// malformed value is a validation error, never a silent default.
func parseExpiry(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, internal.NewValidationFieldError("validade",
			"validade inválida, use o formato YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	return &parsed, nil
}

func formatExpiry(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(dateLayout)
	return &formatted
}
