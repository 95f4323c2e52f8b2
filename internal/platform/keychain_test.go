package platform

import (
	"errors"
	"testing"
)

func TestMemKeychainRoundTrip(t *testing.T) {
	kc := NewMemKeychain()
	if err := kc.Store("/tmp/a.vltr", "hunter2"); err != nil {
		t.Fatalf("store: %v", err)
	}
	got, err := kc.Load("/tmp/a.vltr")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != "hunter2" {
		t.Fatalf("load = %q", got)
	}
}

func TestMemKeychainMissingEntry(t *testing.T) {
	kc := NewMemKeychain()
	if _, err := kc.Load("/tmp/missing.vltr"); !errors.Is(err, ErrKeychainNotFound) {
		t.Fatalf("load err = %v, want ErrKeychainNotFound", err)
	}
	if err := kc.Delete("/tmp/missing.vltr"); !errors.Is(err, ErrKeychainNotFound) {
		t.Fatalf("delete err = %v, want ErrKeychainNotFound", err)
	}
}

func TestMemKeychainDelete(t *testing.T) {
	kc := NewMemKeychain()
	if err := kc.Store("/tmp/a.vltr", "hunter2"); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := kc.Delete("/tmp/a.vltr"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := kc.Load("/tmp/a.vltr"); !errors.Is(err, ErrKeychainNotFound) {
		t.Fatalf("load after delete err = %v", err)
	}
}

func TestMemKeychainIsolatesVaults(t *testing.T) {
	kc := NewMemKeychain()
	kc.Store("/tmp/a.vltr", "pw-a")
	kc.Store("/tmp/b.vltr", "pw-b")
	if got, _ := kc.Load("/tmp/a.vltr"); got != "pw-a" {
		t.Fatalf("vault a = %q", got)
	}
	if got, _ := kc.Load("/tmp/b.vltr"); got != "pw-b" {
		t.Fatalf("vault b = %q", got)
	}
}
