package supplier

import (
	"github.com/mercadinho/gestao/internal"
)

// Supplier is a vendor registry record, identified by its legal name.
type Supplier struct {
	ID        int64   `json:"id" gorm:"primaryKey"`
	LegalName string  `json:"razao_social" gorm:"column:razao_social;not null"`
	TaxID     *string `json:"cnpj" gorm:"column:cnpj"`
	Email     *string `json:"email" gorm:"column:email"`
	Phone     *string `json:"telefone" gorm:"column:telefone"`
	Address   *string `json:"endereco" gorm:"column:endereco"`
	Status    *string `json:"status" gorm:"column:status"`
}

func (Supplier) TableName() string {
	return "fornecedor"
}

type CreateSupplierDTO struct {
	LegalName string  `json:"razao_social"`
	TaxID     *string `json:"cnpj"`
	Email     *string `json:"email"`
	Phone     *string `json:"telefone"`
	Address   *string `json:"endereco"`
	Status    *string `json:"status"`
}

func (dto CreateSupplierDTO) Validate() error {
	if dto.LegalName == "" {
		return internal.NewValidationFieldError("razao_social", "razão social é obrigatória", internal.ErrCodeMissingField)
	}
	return nil
}

func (dto CreateSupplierDTO) ToSupplier() *Supplier {
	return &Supplier{
		LegalName: dto.LegalName,
		TaxID:     dto.TaxID,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Address:   dto.Address,
		Status:    dto.Status,
	}
}

type UpdateSupplierDTO struct {
	LegalName *string `json:"razao_social"`
	TaxID     *string `json:"cnpj"`
	Email     *string `json:"email"`
	Phone     *string `json:"telefone"`
	Address   *string `json:"endereco"`
	Status    *string `json:"status"`
}

func (dto UpdateSupplierDTO) Validate() error {
	if dto.LegalName != nil && *dto.LegalName == "" {
		return internal.NewValidationFieldError("razao_social", "razão social não pode ser vazia", internal.ErrCodeMissingField)
	}
	return nil
}

func (dto UpdateSupplierDTO) ApplyTo(s *Supplier) {
	if dto.LegalName != nil {
		s.LegalName = *dto.LegalName
	}
	if dto.TaxID != nil {
		s.TaxID = dto.TaxID
	}
	if dto.Email != nil {
		s.Email = dto.Email
	}
	if dto.Phone != nil {
		s.Phone = dto.Phone
	}
	if dto.Address != nil {
		s.Address = dto.Address
	}
	if dto.Status != nil {
		s.Status = dto.Status
	}
}

var ErrSupplierNotFound = internal.NewNotFoundError("Fornecedor não encontrado", internal.ErrCodeSupplierNotFound)
