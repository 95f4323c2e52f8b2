package platform

import (
	"errors"
	"sync"

	"github.com/zalando/go-keyring"
)

const keyringService = "vaultura"

var ErrKeychainNotFound = errors.New("platform: keychain entry not found")

// Keychain stores the master password in the OS credential store, keyed by
// vault path so multiple vaults do not collide.
type Keychain interface {
	Store(vaultPath, password string) error
	Load(vaultPath string) (string, error)
	Delete(vaultPath string) error
}

type osKeychain struct{}

func NewKeychain() Keychain { return osKeychain{} }

func (osKeychain) Store(vaultPath, password string) error {
	return keyring.Set(keyringService, vaultPath, password)
}

func (osKeychain) Load(vaultPath string) (string, error) {
	secret, err := keyring.Get(keyringService, vaultPath)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrKeychainNotFound
	}
	return secret, err
}

func (osKeychain) Delete(vaultPath string) error {
	err := keyring.Delete(keyringService, vaultPath)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrKeychainNotFound
	}
	return err
}

// MemKeychain is an in-process Keychain for tests and for hosts without a
// usable credential store.
type MemKeychain struct {
	mu      sync.Mutex
	entries map[string]string
}

func NewMemKeychain() *MemKeychain {
	return &MemKeychain{entries: make(map[string]string)}
}

func (m *MemKeychain) Store(vaultPath, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[vaultPath] = password
	return nil
}

func (m *MemKeychain) Load(vaultPath string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	secret, ok := m.entries[vaultPath]
	if !ok {
		return "", ErrKeychainNotFound
	}
	return secret, nil
}

func (m *MemKeychain) Delete(vaultPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[vaultPath]; !ok {
		return ErrKeychainNotFound
	}
	delete(m.entries, vaultPath)
	return nil
}
