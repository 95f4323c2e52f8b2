package vault

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/zombocoder/vaultura/internal/crypto"
)

func TestExportImportRoundTrip(t *testing.T) {
	s := newTestService(t)
	g, _ := s.AddGroup("Shared", nil)
	if _, err := s.AddItem(ItemDraft{Title: "Wiki", Username: "alice", GroupID: &g.ID}); err != nil {
		t.Fatalf("add: %v", err)
	}

	exportPath := filepath.Join(t.TempDir(), "export.vltr")
	if err := s.Export(exportPath, []byte("export-pass")); err != nil {
		t.Fatalf("export: %v", err)
	}

	other := NewService(filepath.Join(t.TempDir(), "other.vltr"), fastParams())
	if err := other.Create([]byte("other-pass")); err != nil {
		t.Fatalf("create: %v", err)
	}
	merged, err := other.Import(exportPath, []byte("export-pass"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if merged != 2 {
		t.Fatalf("merged = %d, want 2 (group + item)", merged)
	}
	items, _ := other.Items()
	if len(items) != 1 || items[0].Title != "Wiki" {
		t.Fatalf("items = %+v", items)
	}
	if !other.IsDirty() {
		t.Fatal("import did not mark vault dirty")
	}
}

func TestImportSkipsDuplicates(t *testing.T) {
	s := newTestService(t)
	if _, err := s.AddItem(ItemDraft{Title: "Dup"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	exportPath := filepath.Join(t.TempDir(), "export.vltr")
	if err := s.Export(exportPath, []byte("pw")); err != nil {
		t.Fatalf("export: %v", err)
	}

	merged, err := s.Import(exportPath, []byte("pw"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if merged != 0 {
		t.Fatalf("merged = %d, want 0 for identical payload", merged)
	}
	items, _ := s.Items()
	if len(items) != 1 {
		t.Fatalf("duplicate items merged: %d", len(items))
	}
}

func TestImportWrongPassword(t *testing.T) {
	s := newTestService(t)
	exportPath := filepath.Join(t.TempDir(), "export.vltr")
	if err := s.Export(exportPath, []byte("right")); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := s.Import(exportPath, []byte("wrong")); !errors.Is(err, crypto.ErrAuth) {
		t.Fatalf("err = %v, want crypto.ErrAuth", err)
	}
}

func TestExportUsesFreshSalt(t *testing.T) {
	s := newTestService(t)
	exportPath := filepath.Join(t.TempDir(), "export.vltr")
	if err := s.Export(exportPath, []byte("pw")); err != nil {
		t.Fatalf("export: %v", err)
	}

	foreign := NewService(exportPath, fastParams())
	if err := foreign.Unlock([]byte("pw")); err != nil {
		t.Fatalf("unlock export: %v", err)
	}
	if foreign.header.Salt == s.header.Salt {
		t.Fatal("export reused the vault's salt")
	}
	if foreign.header.Nonce == s.header.Nonce {
		t.Fatal("export reused the vault's nonce")
	}
}

func TestExportWhileLockedRejected(t *testing.T) {
	s := newTestService(t)
	s.Lock()
	if err := s.Export(filepath.Join(t.TempDir(), "x.vltr"), []byte("pw")); !errors.Is(err, ErrLocked) {
		t.Fatalf("err = %v, want ErrLocked", err)
	}
	if _, err := s.Import("nowhere.vltr", []byte("pw")); !errors.Is(err, ErrLocked) {
		t.Fatalf("err = %v, want ErrLocked", err)
	}
}

func TestImportMergedGroupRefResolves(t *testing.T) {
	src := newTestService(t)
	g, _ := src.AddGroup("G", nil)
	it, err := src.AddItem(ItemDraft{Title: "Ref", GroupID: &g.ID})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	exportPath := filepath.Join(t.TempDir(), "export.vltr")
	if err := src.Export(exportPath, []byte("pw")); err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := newTestService(t)
	if _, err := dst.Import(exportPath, []byte("pw")); err != nil {
		t.Fatalf("import: %v", err)
	}
	got, err := dst.Item(it.ID)
	if err != nil {
		t.Fatalf("item missing: %v", err)
	}
	if got.GroupID == nil || *got.GroupID != g.ID {
		t.Fatal("imported item lost a resolvable group reference")
	}
}

func TestImportOrphanedItemBecomesUngrouped(t *testing.T) {
	// Hand-build a foreign vault whose item references a group that is
	// not present in the foreign payload at all.
	missing := uuid.New()
	payload := NewPayload()
	it := NewItem("Orphan", &missing)
	payload.Items = append(payload.Items, it)

	foreignPath := filepath.Join(t.TempDir(), "foreign.vltr")
	writeForeign(t, foreignPath, []byte("pw"), payload)

	dst := newTestService(t)
	if _, err := dst.Import(foreignPath, []byte("pw")); err != nil {
		t.Fatalf("import: %v", err)
	}
	got, err := dst.Item(it.ID)
	if err != nil {
		t.Fatalf("item missing: %v", err)
	}
	if got.GroupID != nil {
		t.Fatal("unresolvable group reference survived the merge")
	}
}

func writeForeign(t *testing.T, path string, password []byte, payload *Payload) {
	t.Helper()
	salt, err := crypto.GenerateSalt()
	if err != nil {
		t.Fatalf("salt: %v", err)
	}
	key, err := crypto.DeriveKey(password, salt, fastParams())
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	defer key.Wipe()

	plaintext, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	nonce, err := crypto.GenerateNonce()
	if err != nil {
		t.Fatalf("nonce: %v", err)
	}
	ciphertext, err := crypto.Seal(key.Bytes(), nonce, plaintext)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	h := Header{Version: FormatVersion, KDF: fastParams()}
	copy(h.Salt[:], salt)
	copy(h.Nonce[:], nonce)
	if err := os.WriteFile(path, EncodeFile(h, ciphertext), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
}
