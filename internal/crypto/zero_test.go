package crypto

import "testing"

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	Zero(b)
	for i, c := range b {
		if c != 0 {
			t.Fatalf("byte %d = %d after Zero", i, c)
		}
	}
}

func TestSecretBytesWipe(t *testing.T) {
	s := NewSecretBytes([]byte("sensitive"))
	if s.Wiped() {
		t.Fatal("fresh secret reports wiped")
	}
	s.Wipe()
	if !s.Wiped() {
		t.Fatal("secret not wiped")
	}
	for i, c := range s.Bytes() {
		if c != 0 {
			t.Fatalf("byte %d = %d after Wipe", i, c)
		}
	}
	// Second wipe is a no-op.
	s.Wipe()
	if !s.Wiped() {
		t.Fatal("double wipe cleared the wiped state")
	}
}

func TestSecretBytesNil(t *testing.T) {
	var s *SecretBytes
	s.Wipe()
	if !s.Wiped() {
		t.Fatal("nil secret should report wiped")
	}
}
