package client

import (
	"github.com/mercadinho/gestao/internal"
)

// Client is a customer registry record.
type Client struct {
	ID      int64   `json:"id" gorm:"primaryKey"`
	Name    string  `json:"nome" gorm:"column:nome;not null"`
	Email   *string `json:"email" gorm:"column:email"`
	Phone   *string `json:"telefone" gorm:"column:telefone"`
	TaxID   *string `json:"cpf" gorm:"column:cpf"`
	Address *string `json:"endereco" gorm:"column:endereco"`
	City    *string `json:"cidade" gorm:"column:cidade"`
	Status  *string `json:"status" gorm:"column:status"`
}

func (Client) TableName() string {
	return "cliente"
}

type CreateClientDTO struct {
	Name    string  `json:"nome"`
	Email   *string `json:"email"`
	Phone   *string `json:"telefone"`
	TaxID   *string `json:"cpf"`
	Address *string `json:"endereco"`
	City    *string `json:"cidade"`
	Status  *string `json:"status"`
}

func (dto CreateClientDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationFieldError("nome", "nome é obrigatório", internal.ErrCodeMissingField)
	}
	return nil
}

func (dto CreateClientDTO) ToClient() *Client {
	return &Client{
		Name:    dto.Name,
		Email:   dto.Email,
		Phone:   dto.Phone,
		TaxID:   dto.TaxID,
		Address: dto.Address,
		City:    dto.City,
		Status:  dto.Status,
	}
}

// UpdateClientDTO is a partial update; nil fields keep their stored value.
type UpdateClientDTO struct {
	Name    *string `json:"nome"`
	Email   *string `json:"email"`
	Phone   *string `json:"telefone"`
	TaxID   *string `json:"cpf"`
	Address *string `json:"endereco"`
	City    *string `json:"cidade"`
	Status  *string `json:"status"`
}

func (dto UpdateClientDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return internal.NewValidationFieldError("nome", "nome não pode ser vazio", internal.ErrCodeMissingField)
	}
	return nil
}

func (dto UpdateClientDTO) ApplyTo(c *Client) {
	if dto.Name != nil {
		c.Name = *dto.Name
	}
	if dto.Email != nil {
		c.Email = dto.Email
	}
	if dto.Phone != nil {
		c.Phone = dto.Phone
	}
	if dto.TaxID != nil {
		c.TaxID = dto.TaxID
	}
	if dto.Address != nil {
		c.Address = dto.Address
	}
	if dto.City != nil {
		c.City = dto.City
	}
	if dto.Status != nil {
		c.Status = dto.Status
	}
}

var ErrClientNotFound = internal.NewNotFoundError("Cliente não encontrado", internal.ErrCodeClientNotFound)
