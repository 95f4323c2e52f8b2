package vault

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/zombocoder/vaultura/internal/crypto"
	"github.com/zombocoder/vaultura/internal/storage"
)

// Import opens a foreign vault file with its own salt, params and nonce,
// and merges its payload into the unlocked vault. Groups and items whose
// identifiers already exist are skipped. Imported items pointing at a group
// that did not survive the merge become ungrouped rather than orphaned.
// Re-encryption under this vault's key happens at the next Save.
func (s *Service) Import(path string, password []byte) (int, error) {
	p, err := s.currentPayload()
	if err != nil {
		return 0, err
	}

	foreign, err := readForeign(path, password)
	if err != nil {
		return 0, err
	}

	merged := 0
	for _, g := range foreign.Groups {
		if p.findGroup(g.ID) >= 0 {
			continue
		}
		p.Groups = append(p.Groups, g)
		merged++
	}
	for _, it := range foreign.Items {
		if p.findItem(it.ID) >= 0 {
			continue
		}
		if it.GroupID != nil && p.findGroup(*it.GroupID) < 0 {
			it.GroupID = nil
		}
		p.Items = append(p.Items, it)
		merged++
	}

	// Parent links may point outside the merged set.
	for i := range p.Groups {
		if p.Groups[i].ParentID != nil && p.findGroup(*p.Groups[i].ParentID) < 0 {
			p.Groups[i].ParentID = nil
		}
	}

	if merged > 0 {
		s.dirty = true
	}
	return merged, nil
}

// Export re-encrypts the unlocked payload under a key derived from the
// given password with a fresh salt and nonce, and writes it atomically to
// path. The original vault and its key are untouched.
func (s *Service) Export(path string, password []byte) error {
	p, err := s.currentPayload()
	if err != nil {
		return err
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		return err
	}
	key, err := crypto.DeriveKey(password, salt, s.header.KDF)
	if err != nil {
		return err
	}
	defer key.Wipe()

	plaintext, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("vault: encode payload: %w", err)
	}
	defer crypto.Zero(plaintext)

	nonce, err := crypto.GenerateNonce()
	if err != nil {
		return err
	}
	ciphertext, err := crypto.Seal(key.Bytes(), nonce, plaintext)
	if err != nil {
		return err
	}

	header := Header{Version: FormatVersion, KDF: s.header.KDF}
	copy(header.Salt[:], salt)
	copy(header.Nonce[:], nonce)

	return storage.WriteFileAtomic(path, EncodeFile(header, ciphertext), 0600)
}

func readForeign(path string, password []byte) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vault: read %s: %w", path, err)
	}
	header, ciphertext, err := DecodeFile(data)
	if err != nil {
		return nil, err
	}
	key, err := crypto.DeriveKey(password, header.Salt[:], header.KDF)
	if err != nil {
		return nil, err
	}
	defer key.Wipe()

	plaintext, err := crypto.Open(key.Bytes(), header.Nonce[:], ciphertext)
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(plaintext)

	var payload Payload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, fmt.Errorf("vault: decode payload: %w", err)
	}
	return &payload, nil
}
