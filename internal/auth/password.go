package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argonSaltLength = 16
	argonKeyLength  = 32
)

// PasswordHasher hashes passwords with argon2id and encodes them in the
// standard PHC string format, so parameters travel with the digest and can
// be raised later without invalidating stored hashes.
type PasswordHasher struct {
	memory     uint32
	iterations uint32
	threads    uint8
}

func NewPasswordHasher(memory, iterations uint32, threads uint8) *PasswordHasher {
	return &PasswordHasher{
		memory:     memory,
		iterations: iterations,
		threads:    threads,
	}
}

// DefaultPasswordHasher uses the parameters recommended for interactive
// logins (64 MiB, 3 passes, 2 lanes).
func DefaultPasswordHasher() *PasswordHasher {
	return NewPasswordHasher(64*1024, 3, 2)
}

func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, h.iterations, h.memory, h.threads, argonKeyLength)

	digest := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory,
		h.iterations,
		h.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return digest, nil
}

// Verify checks plaintext against a PHC-encoded digest. A wrong password
// returns ErrMismatchedPassword; a malformed digest returns a distinct
// error, so callers never conflate mismatch with comparison failure.
func (h *PasswordHasher) Verify(digest, plaintext string) error {
	memory, iterations, threads, salt, key, err := decodeDigest(digest)
	if err != nil {
		return err
	}

	candidate := argon2.IDKey([]byte(plaintext), salt, iterations, memory, threads, uint32(len(key)))

	if subtle.ConstantTimeCompare(key, candidate) != 1 {
		return ErrMismatchedPassword
	}
	return nil
}

func decodeDigest(digest string) (memory, iterations uint32, threads uint8, salt, key []byte, err error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed argon2id digest")
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed argon2id version: %w", err)
	}
	if version != argon2.Version {
		return 0, 0, 0, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed argon2id parameters: %w", err)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed argon2id salt: %w", err)
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed argon2id key: %w", err)
	}

	return memory, iterations, threads, salt, key, nil
}
