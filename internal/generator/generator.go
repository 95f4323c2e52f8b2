// Package generator produces random passwords from a cryptographically
// secure source.
package generator

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	digits    = "0123456789"
	symbols   = "!@#$%^&*()-_=+[]{}|;:,.<>?"

	// Visually confusable characters removed by ExcludeAmbiguous.
	ambiguous = "0O1lI"
)

const MaxLength = 128

// Options selects the character classes and length for Generate.
type Options struct {
	Length           int
	Uppercase        bool
	Lowercase        bool
	Digits           bool
	Symbols          bool
	ExcludeAmbiguous bool
}

func DefaultOptions() Options {
	return Options{
		Length:    20,
		Uppercase: true,
		Lowercase: true,
		Digits:    true,
		Symbols:   true,
	}
}

// ConfigError reports options that leave nothing to sample from.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("generator: %s", e.Reason)
}

// Generate returns a random password of opts.Length drawn from the enabled
// character classes. When the password is long enough, every enabled class
// is represented at least once.
func Generate(opts Options) (string, error) {
	if opts.Length <= 0 {
		return "", &ConfigError{Reason: "length must be positive"}
	}
	if opts.Length > MaxLength {
		return "", &ConfigError{Reason: fmt.Sprintf("length must be at most %d", MaxLength)}
	}

	classes := enabledClasses(opts)
	if len(classes) == 0 {
		return "", &ConfigError{Reason: "no character classes enabled"}
	}

	var charset string
	for _, c := range classes {
		charset += c
	}
	if charset == "" {
		return "", &ConfigError{Reason: "effective character set is empty"}
	}

	// Resample until each enabled class appears, unless the password is
	// too short to cover them all.
	requireCoverage := opts.Length >= len(classes)
	for {
		pw, err := sample(charset, opts.Length)
		if err != nil {
			return "", err
		}
		if !requireCoverage || coversAll(pw, classes) {
			return pw, nil
		}
	}
}

func enabledClasses(opts Options) []string {
	var classes []string
	add := func(class string) {
		if opts.ExcludeAmbiguous {
			class = stripAmbiguous(class)
		}
		if class != "" {
			classes = append(classes, class)
		}
	}
	if opts.Uppercase {
		add(uppercase)
	}
	if opts.Lowercase {
		add(lowercase)
	}
	if opts.Digits {
		add(digits)
	}
	if opts.Symbols {
		add(symbols)
	}
	return classes
}

func stripAmbiguous(class string) string {
	var b strings.Builder
	for _, r := range class {
		if !strings.ContainsRune(ambiguous, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func sample(charset string, length int) (string, error) {
	max := big.NewInt(int64(len(charset)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generator: random source: %w", err)
		}
		out[i] = charset[n.Int64()]
	}
	return string(out), nil
}

func coversAll(pw string, classes []string) bool {
	for _, class := range classes {
		if !strings.ContainsAny(pw, class) {
			return false
		}
	}
	return true
}
