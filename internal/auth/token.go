package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService mints and validates the signed, time-limited tokens embedded
// in password-reset links. The signing key is derived from the process-wide
// secret and a purpose salt, so a token issued for one purpose never
// verifies under another. Expiry is decided at validation time from the
// issued-at claim and the caller's max age, which keeps the link's lifetime
// a property of the consuming endpoint rather than of the token itself.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

func (s *TokenService) keyFor(purposeSalt string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(purposeSalt))
	return mac.Sum(nil)
}

// Issue signs the payload (an email address) under the purpose-scoped key.
func (s *TokenService) Issue(email, purposeSalt string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  email,
		IssuedAt: jwt.NewNumericDate(s.now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.keyFor(purposeSalt))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature and age, returning the embedded email and the
// issue time. ErrTokenExpired and ErrTokenInvalid are distinguished so the
// caller can log them differently while showing the user a generic notice.
func (s *TokenService) Validate(tokenString, purposeSalt string, maxAge time.Duration) (string, time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.keyFor(purposeSalt), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", time.Time{}, ErrTokenExpired
		}
		return "", time.Time{}, ErrTokenInvalid
	}

	if !token.Valid || claims.IssuedAt == nil || claims.Subject == "" {
		return "", time.Time{}, ErrTokenInvalid
	}

	issuedAt := claims.IssuedAt.Time
	if s.now().After(issuedAt.Add(maxAge)) {
		return "", time.Time{}, ErrTokenExpired
	}

	return claims.Subject, issuedAt, nil
}
