package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"

	xchacha "golang.org/x/crypto/chacha20poly1305"
)

const NonceSize = xchacha.NonceSizeX // 24

// ErrAuth is the single undifferentiated failure for every unsuccessful
// Open: wrong key, wrong nonce, flipped bit, truncated input. Collapsing the
// cases avoids an oracle that distinguishes a wrong password from a
// corrupted file.
var ErrAuth = errors.New("crypto: authentication failed")

func GenerateNonce() ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("crypto: generate nonce: %w", err)
	}
	return nonce, nil
}

// Seal encrypts plaintext with XChaCha20-Poly1305 under key and nonce. The
// nonce is not prepended; the caller persists it in the vault file header
// and must never reuse it under the same key.
func Seal(key, nonce, plaintext []byte) ([]byte, error) {
	aead, err := xchacha.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: seal: %w", err)
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("crypto: seal: nonce must be %d bytes", NonceSize)
	}
	return aead.Seal(nil, nonce, plaintext, nil), nil
}

// Open decrypts and authenticates ciphertext. Opening is all-or-nothing: any
// failure yields ErrAuth and never a partially decrypted buffer.
func Open(key, nonce, ciphertext []byte) ([]byte, error) {
	aead, err := xchacha.NewX(key)
	if err != nil {
		return nil, ErrAuth
	}
	if len(nonce) != NonceSize || len(ciphertext) < aead.Overhead() {
		return nil, ErrAuth
	}
	pt, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuth
	}
	return pt, nil
}
