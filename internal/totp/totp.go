// Package totp computes RFC 6238 time-based one-time codes for items that
// carry an authenticator secret.
package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultStep   = 30 * time.Second
	DefaultDigits = 6
	secretSize    = 20 // 160-bit secret
)

var ErrBadSecret = errors.New("totp: invalid base32 secret")

func GenerateSecret() (string, error) {
	secret := make([]byte, secretSize)
	if _, err := rand.Read(secret); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret)
	return enc, nil
}

// Code returns the current 6-digit code for the secret at the given time.
func Code(secret string, when time.Time) (string, error) {
	secretBytes, err := decodeSecret(secret)
	if err != nil {
		return "", ErrBadSecret
	}
	defer zero(secretBytes)

	step := int64(DefaultStep / time.Second)
	counter := when.Unix() / step
	if counter < 0 {
		return "", fmt.Errorf("totp: time before epoch")
	}
	return computeCode(secretBytes, uint64(counter)), nil
}

// Verify checks a code against the secret, accepting one step of clock
// skew in either direction.
func Verify(code, secret string, when time.Time) bool {
	code = strings.TrimSpace(code)
	if len(code) != DefaultDigits {
		return false
	}
	secretBytes, err := decodeSecret(secret)
	if err != nil {
		return false
	}
	defer zero(secretBytes)

	step := int64(DefaultStep / time.Second)
	counter := when.Unix() / step
	for i := int64(-1); i <= 1; i++ {
		cur := counter + i
		if cur < 0 {
			continue
		}
		if computeCode(secretBytes, uint64(cur)) == code {
			return true
		}
	}
	return false
}

func computeCode(secret []byte, counter uint64) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], counter)

	mac := hmac.New(sha1.New, secret)
	mac.Write(buf[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0F
	trunc := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7FFFFFFF
	code := trunc % 1000000
	return fmt.Sprintf("%0*d", DefaultDigits, code)
}

func decodeSecret(secret string) ([]byte, error) {
	secret = strings.ToUpper(strings.TrimSpace(secret))
	decoder := base32.StdEncoding.WithPadding(base32.NoPadding)
	return decoder.DecodeString(secret)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
