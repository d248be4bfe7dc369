package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Mailer delivers the reset link. Satisfied by internal/mail.
type Mailer interface {
	SendPasswordReset(to, link string) error
}

// Service performs credential checks and drives the password-reset flow.
type Service struct {
	users       UserRepository
	hasher      *PasswordHasher
	tokens      *TokenService
	mailer      Mailer
	baseURL     string
	resetMaxAge time.Duration
	logger      *slog.Logger
}

func NewService(users UserRepository, hasher *PasswordHasher, tokens *TokenService, mailer Mailer, baseURL string, resetMaxAge time.Duration, logger *slog.Logger) *Service {
	return &Service{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		mailer:      mailer,
		baseURL:     strings.TrimRight(baseURL, "/"),
		resetMaxAge: resetMaxAge,
		logger:      logger,
	}
}

// Login verifies the email/password pair against the credential store.
// ErrUserNotFound and ErrMismatchedPassword are kept distinct because the
// login page reports them differently (an enumeration trade-off the product
// has so far chosen to keep).
func (s *Service) Login(email, password string) (*User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.logger.Warn("login attempt for unknown email", "email", email)
			return nil, ErrUserNotFound
		}
		s.logger.Error("credential lookup failed", "error", err)
		return nil, err
	}

	if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, ErrMismatchedPassword) {
			s.logger.Warn("login attempt with wrong password", "user_id", user.ID)
			return nil, ErrMismatchedPassword
		}
		s.logger.Error("password verification failed", "user_id", user.ID, "error", err)
		return nil, err
	}

	return user, nil
}

// RequestPasswordReset issues a signed token for the email and mails the
// reset link. Returns ErrUserNotFound for unknown addresses.
func (s *Service) RequestPasswordReset(email string) error {
	if _, err := s.users.GetByEmail(email); err != nil {
		return err
	}

	token, err := s.tokens.Issue(email, ResetPurposeSalt)
	if err != nil {
		s.logger.Error("failed to issue reset token", "error", err)
		return fmt.Errorf("issue reset token: %w", err)
	}

	link := fmt.Sprintf("%s/resetar/%s", s.baseURL, token)
	if err := s.mailer.SendPasswordReset(email, link); err != nil {
		s.logger.Error("failed to send reset email", "error", err)
		return fmt.Errorf("send reset email: %w", err)
	}

	s.logger.Info("password reset email sent", "email", email)
	return nil
}

// ValidateResetToken checks signature, age, and single-use: a token issued
// before the user's last password change no longer validates, so consuming
// a link retires it and every older link for the same account.
func (s *Service) ValidateResetToken(token string) (string, error) {
	email, issuedAt, err := s.tokens.Validate(token, ResetPurposeSalt, s.resetMaxAge)
	if err != nil {
		return "", err
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrTokenInvalid
		}
		return "", err
	}

	if user.PasswordAt != nil && issuedAt.Before(*user.PasswordAt) {
		s.logger.Warn("reset token predates last password change", "user_id", user.ID)
		return "", ErrTokenInvalid
	}

	return email, nil
}

// ResetPassword consumes a valid token and stores the new password hash.
func (s *Service) ResetPassword(token, newPassword string) error {
	email, err := s.ValidateResetToken(token)
	if err != nil {
		return err
	}

	if newPassword == "" {
		return fmt.Errorf("new password is required")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		s.logger.Error("failed to hash new password", "error", err)
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(email, hash, time.Now()); err != nil {
		s.logger.Error("failed to store new password", "error", err)
		return err
	}

	s.logger.Info("password reset completed", "email", email)
	return nil
}
