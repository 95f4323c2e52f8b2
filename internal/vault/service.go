package vault

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/zombocoder/vaultura/internal/crypto"
	"github.com/zombocoder/vaultura/internal/storage"
)

// State of the vault lifecycle. Unlocking is transient: every unlock
// attempt ends in Unlocked or back in Locked.
type State int

const (
	Locked State = iota
	Unlocking
	Unlocked
)

func (s State) String() string {
	switch s {
	case Locked:
		return "locked"
	case Unlocking:
		return "unlocking"
	case Unlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// Service orchestrates key derivation, the file codec and the in-memory
// payload. It is owned by exactly one controller at a time; exclusivity is
// structural, so there is no internal locking.
type Service struct {
	path   string
	params crypto.KDFParams // defaults used at creation

	state   State
	header  Header
	key     *crypto.SecretBytes
	payload *Payload
	dirty   bool
}

func NewService(path string, params crypto.KDFParams) *Service {
	return &Service{path: path, params: params}
}

func (s *Service) Path() string  { return s.path }
func (s *Service) State() State  { return s.state }
func (s *Service) IsDirty() bool { return s.dirty }

func (s *Service) IsUnlocked() bool { return s.state == Unlocked }

func (s *Service) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Create initialises a brand new vault: fresh salt, key derived with the
// configured params, empty payload, written to disk immediately. The
// service is left unlocked.
func (s *Service) Create(password []byte) error {
	if s.state != Locked {
		return ErrAlreadyUnlocked
	}
	salt, err := crypto.GenerateSalt()
	if err != nil {
		return err
	}
	key, err := crypto.DeriveKey(password, salt, s.params)
	if err != nil {
		return err
	}

	s.header = Header{Version: FormatVersion, KDF: s.params}
	copy(s.header.Salt[:], salt)
	s.key = key
	s.payload = NewPayload()
	s.state = Unlocked
	s.dirty = false

	if err := s.Save(); err != nil {
		s.reset()
		return err
	}
	return nil
}

// Unlock derives the key from the header's persisted salt and params, opens
// the ciphertext and materialises the payload. Any failure wipes the key,
// returns the service to Locked and exposes no partial state.
func (s *Service) Unlock(password []byte) error {
	if s.state != Locked {
		return ErrAlreadyUnlocked
	}
	s.state = Unlocking

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.state = Locked
		return fmt.Errorf("vault: read %s: %w", s.path, err)
	}
	header, ciphertext, err := DecodeFile(data)
	if err != nil {
		s.state = Locked
		return err
	}
	key, err := crypto.DeriveKey(password, header.Salt[:], header.KDF)
	if err != nil {
		s.state = Locked
		return err
	}
	plaintext, err := crypto.Open(key.Bytes(), header.Nonce[:], ciphertext)
	if err != nil {
		key.Wipe()
		s.state = Locked
		return err
	}

	var payload Payload
	err = json.Unmarshal(plaintext, &payload)
	crypto.Zero(plaintext)
	if err != nil {
		key.Wipe()
		s.state = Locked
		return fmt.Errorf("vault: decode payload: %w", err)
	}

	s.header = header
	s.key = key
	s.payload = &payload
	s.state = Unlocked
	s.dirty = false
	return nil
}

// Lock wipes the master key and discards the decrypted payload. A later
// unlock rebuilds everything from disk.
func (s *Service) Lock() {
	s.reset()
}

func (s *Service) reset() {
	s.key.Wipe()
	s.key = nil
	s.payload = nil
	s.state = Locked
	s.dirty = false
}

// Save serialises the payload, seals it under the current key with a fresh
// nonce and persists atomically. The salt and KDF params in the header are
// never regenerated for an existing vault. On failure the previously
// persisted file is untouched.
func (s *Service) Save() error {
	if s.state != Unlocked {
		return ErrLocked
	}
	s.payload.Meta.ModifiedAt = time.Now().UTC()

	plaintext, err := json.Marshal(s.payload)
	if err != nil {
		return fmt.Errorf("vault: encode payload: %w", err)
	}
	defer crypto.Zero(plaintext)

	nonce, err := crypto.GenerateNonce()
	if err != nil {
		return err
	}
	ciphertext, err := crypto.Seal(s.key.Bytes(), nonce, plaintext)
	if err != nil {
		return err
	}

	header := s.header
	copy(header.Nonce[:], nonce)

	if err := storage.WriteFileAtomic(s.path, EncodeFile(header, ciphertext), 0600); err != nil {
		return err
	}
	s.header = header
	s.dirty = false
	return nil
}

func (s *Service) currentPayload() (*Payload, error) {
	if s.state != Unlocked {
		return nil, ErrLocked
	}
	return s.payload, nil
}
