package auth

import (
	"errors"
	"time"
)

// User is the credential store record backing login and password reset.
type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Name         string     `json:"nome" gorm:"column:nome;not null"`
	Email        string     `json:"email" gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"column:senha_hash;not null"`
	PasswordAt   *time.Time `json:"-" gorm:"column:senha_alterada_em"`
}

func (User) TableName() string {
	return "usuario"
}

// UserRepository is the persistence contract for credentials.
type UserRepository interface {
	GetByEmail(email string) (*User, error)
	Create(user *User) error
	UpdatePassword(email, passwordHash string, changedAt time.Time) error
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrMismatchedPassword = errors.New("password does not match")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// ResetPurposeSalt scopes reset tokens so they cannot be replayed for any
// other signed-token purpose.
const ResetPurposeSalt = "redefinir-senha"
