package crypto

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	KeySize  = 32
	SaltSize = 32
)

// Cost parameter floors. Argon2 itself requires at least 8 KiB of memory per
// lane and panics below that, so the bounds are checked up front and surfaced
// as a KDFError instead.
const (
	minMemoryPerLaneKiB = 8
	maxParallelism      = 255
)

// KDFParams are the Argon2id cost parameters. They are persisted unencrypted
// in the vault file header so that a later unlock reproduces the same key
// even if the configured defaults change.
type KDFParams struct {
	Memory      uint32 // KiB
	Time        uint32
	Parallelism uint32
}

func DefaultKDFParams() KDFParams {
	return KDFParams{Memory: 64 * 1024, Time: 3, Parallelism: 4}
}

// KDFError reports cost parameters outside the supported bounds.
type KDFError struct {
	Reason string
}

func (e *KDFError) Error() string {
	return fmt.Sprintf("crypto: kdf: %s", e.Reason)
}

func (p KDFParams) Validate() error {
	if p.Time == 0 {
		return &KDFError{Reason: "time cost must be at least 1"}
	}
	if p.Parallelism == 0 {
		return &KDFError{Reason: "parallelism must be at least 1"}
	}
	if p.Parallelism > maxParallelism {
		return &KDFError{Reason: fmt.Sprintf("parallelism must be at most %d", maxParallelism)}
	}
	if p.Memory < minMemoryPerLaneKiB*p.Parallelism {
		return &KDFError{Reason: fmt.Sprintf("memory cost must be at least %d KiB", minMemoryPerLaneKiB*p.Parallelism)}
	}
	return nil
}

func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("crypto: generate salt: %w", err)
	}
	return salt, nil
}

// DeriveKey derives a KeySize-byte key from the master password with
// Argon2id. Identical inputs always yield an identical key; wrong-password
// detection is left entirely to the AEAD tag check so this path never
// branches on password content.
func DeriveKey(password, salt []byte, p KDFParams) (*SecretBytes, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(salt) != SaltSize {
		return nil, &KDFError{Reason: fmt.Sprintf("salt must be %d bytes", SaltSize)}
	}
	key := argon2.IDKey(password, salt, p.Time, p.Memory, uint8(p.Parallelism), KeySize)
	return NewSecretBytes(key), nil
}
