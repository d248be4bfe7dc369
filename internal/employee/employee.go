package employee

import (
	"github.com/mercadinho/gestao/internal"
)

// Employee is a staff registry record.
type Employee struct {
	ID     int64    `json:"id" gorm:"primaryKey"`
	Name   string   `json:"nome" gorm:"column:nome;not null"`
	TaxID  *string  `json:"cpf" gorm:"column:cpf"`
	Role   *string  `json:"cargo" gorm:"column:cargo"`
	Email  *string  `json:"email" gorm:"column:email"`
	Phone  *string  `json:"telefone" gorm:"column:telefone"`
	Salary *float64 `json:"salario" gorm:"column:salario"`
	Status *string  `json:"status" gorm:"column:status"`
}

func (Employee) TableName() string {
	return "funcionario"
}

type CreateEmployeeDTO struct {
	Name   string   `json:"nome"`
	TaxID  *string  `json:"cpf"`
	Role   *string  `json:"cargo"`
	Email  *string  `json:"email"`
	Phone  *string  `json:"telefone"`
	Salary *float64 `json:"salario"`
	Status *string  `json:"status"`
}

func (dto CreateEmployeeDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationFieldError("nome", "nome é obrigatório", internal.ErrCodeMissingField)
	}
	return nil
}

func (dto CreateEmployeeDTO) ToEmployee() *Employee {
	return &Employee{
		Name:   dto.Name,
		TaxID:  dto.TaxID,
		Role:   dto.Role,
		Email:  dto.Email,
		Phone:  dto.Phone,
		Salary: dto.Salary,
		Status: dto.Status,
	}
}

type UpdateEmployeeDTO struct {
	Name   *string  `json:"nome"`
	TaxID  *string  `json:"cpf"`
	Role   *string  `json:"cargo"`
	Email  *string  `json:"email"`
	Phone  *string  `json:"telefone"`
	Salary *float64 `json:"salario"`
	Status *string  `json:"status"`
}

func (dto UpdateEmployeeDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return internal.NewValidationFieldError("nome", "nome não pode ser vazio", internal.ErrCodeMissingField)
	}
	return nil
}

func (dto UpdateEmployeeDTO) ApplyTo(e *Employee) {
	if dto.Name != nil {
		e.Name = *dto.Name
	}
	if dto.TaxID != nil {
		e.TaxID = dto.TaxID
	}
	if dto.Role != nil {
		e.Role = dto.Role
	}
	if dto.Email != nil {
		e.Email = dto.Email
	}
	if dto.Phone != nil {
		e.Phone = dto.Phone
	}
	if dto.Salary != nil {
		e.Salary = dto.Salary
	}
	if dto.Status != nil {
		e.Status = dto.Status
	}
}

var ErrEmployeeNotFound = internal.NewNotFoundError("Funcionário não encontrado", internal.ErrCodeEmployeeNotFound)
