package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func testParams() KDFParams {
	return KDFParams{Memory: 1024, Time: 1, Parallelism: 1}
}

func TestDeriveKeyDeterministic(t *testing.T) {
	salt := make([]byte, SaltSize)
	k1, err := DeriveKey([]byte("password"), salt, testParams())
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	defer k1.Wipe()
	k2, err := DeriveKey([]byte("password"), salt, testParams())
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	defer k2.Wipe()
	if !bytes.Equal(k1.Bytes(), k2.Bytes()) {
		t.Fatal("same inputs produced different keys")
	}
}

func TestDeriveKeyDistinctInputs(t *testing.T) {
	salt := make([]byte, SaltSize)
	otherSalt := bytes.Repeat([]byte{1}, SaltSize)

	base, err := DeriveKey([]byte("password"), salt, testParams())
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	defer base.Wipe()

	byPassword, err := DeriveKey([]byte("password2"), salt, testParams())
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	defer byPassword.Wipe()
	if bytes.Equal(base.Bytes(), byPassword.Bytes()) {
		t.Fatal("different passwords produced the same key")
	}

	bySalt, err := DeriveKey([]byte("password"), otherSalt, testParams())
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	defer bySalt.Wipe()
	if bytes.Equal(base.Bytes(), bySalt.Bytes()) {
		t.Fatal("different salts produced the same key")
	}
}

func TestDeriveKeyLength(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("salt: %v", err)
	}
	key, err := DeriveKey([]byte("password"), salt, testParams())
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	defer key.Wipe()
	if len(key.Bytes()) != KeySize {
		t.Fatalf("key length = %d, want %d", len(key.Bytes()), KeySize)
	}
}

func TestGenerateSaltUnique(t *testing.T) {
	s1, err := GenerateSalt()
	if err != nil {
		t.Fatalf("salt: %v", err)
	}
	s2, err := GenerateSalt()
	if err != nil {
		t.Fatalf("salt: %v", err)
	}
	if len(s1) != SaltSize {
		t.Fatalf("salt length = %d, want %d", len(s1), SaltSize)
	}
	if bytes.Equal(s1, s2) {
		t.Fatal("two generated salts are equal")
	}
}

func TestKDFParamsBounds(t *testing.T) {
	salt := make([]byte, SaltSize)
	cases := []struct {
		name string
		p    KDFParams
	}{
		{"zero time", KDFParams{Memory: 1024, Time: 0, Parallelism: 1}},
		{"zero parallelism", KDFParams{Memory: 1024, Time: 1, Parallelism: 0}},
		{"oversized parallelism", KDFParams{Memory: 1 << 20, Time: 1, Parallelism: 256}},
		{"memory below floor", KDFParams{Memory: 7, Time: 1, Parallelism: 1}},
		{"memory below per-lane floor", KDFParams{Memory: 16, Time: 1, Parallelism: 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DeriveKey([]byte("pw"), salt, tc.p)
			var kdfErr *KDFError
			if !errors.As(err, &kdfErr) {
				t.Fatalf("err = %v, want *KDFError", err)
			}
		})
	}
}

func TestDeriveKeyRejectsShortSalt(t *testing.T) {
	_, err := DeriveKey([]byte("pw"), []byte("short"), testParams())
	var kdfErr *KDFError
	if !errors.As(err, &kdfErr) {
		t.Fatalf("err = %v, want *KDFError", err)
	}
}
