package generator

import (
	"errors"
	"strings"
	"testing"
)

func TestDigitsOnly(t *testing.T) {
	opts := Options{Length: 12, Digits: true}
	for i := 0; i < 50; i++ {
		pw, err := Generate(opts)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(pw) != 12 {
			t.Fatalf("length = %d, want 12", len(pw))
		}
		for _, r := range pw {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit %q in %q", r, pw)
			}
		}
	}
}

func TestDefaultOptionsCoverAllClasses(t *testing.T) {
	pw, err := Generate(DefaultOptions())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(pw) != 20 {
		t.Fatalf("length = %d, want 20", len(pw))
	}
	for _, class := range []string{uppercase, lowercase, digits, symbols} {
		if !strings.ContainsAny(pw, class) {
			t.Fatalf("password %q missing class %q", pw, class[:5])
		}
	}
}

func TestExcludeAmbiguous(t *testing.T) {
	opts := Options{Length: 100, Uppercase: true, Lowercase: true, Digits: true, ExcludeAmbiguous: true}
	pw, err := Generate(opts)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strings.ContainsAny(pw, ambiguous) {
		t.Fatalf("ambiguous character in %q", pw)
	}
}

func TestEmptyCharset(t *testing.T) {
	var cfgErr *ConfigError
	if _, err := Generate(Options{Length: 10}); !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want *ConfigError", err)
	}
}

func TestZeroLength(t *testing.T) {
	var cfgErr *ConfigError
	if _, err := Generate(Options{Length: 0, Lowercase: true}); !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want *ConfigError", err)
	}
}

func TestOversizedLength(t *testing.T) {
	var cfgErr *ConfigError
	if _, err := Generate(Options{Length: MaxLength + 1, Lowercase: true}); !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want *ConfigError", err)
	}
}

func TestShortPasswordStillGenerates(t *testing.T) {
	// Shorter than the number of enabled classes; coverage cannot be
	// required or generation would never terminate.
	opts := Options{Length: 2, Uppercase: true, Lowercase: true, Digits: true, Symbols: true}
	pw, err := Generate(opts)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(pw) != 2 {
		t.Fatalf("length = %d, want 2", len(pw))
	}
}

func TestUniqueness(t *testing.T) {
	p1, err := Generate(DefaultOptions())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	p2, err := Generate(DefaultOptions())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if p1 == p2 {
		t.Fatal("two generated passwords are identical")
	}
}
