// Package app connects the UI to the vault engine. The UI never calls the
// engine directly; it submits intents and renders outcomes, which keeps
// every state transition in one place.
package app

import (
	"github.com/google/uuid"

	"github.com/zombocoder/vaultura/internal/generator"
	"github.com/zombocoder/vaultura/internal/vault"
)

// Intent is a request from the UI. The set is closed: only the types in
// this file implement it.
type Intent interface {
	isIntent()
	name() string
}

// CreateVault initialises a new vault file with the given master password.
type CreateVault struct{ Password string }

// UnlockVault opens the existing vault. An empty password asks the OS
// keyring for the stored one.
type UnlockVault struct{ Password string }

type LockVault struct{}

type SaveVault struct{}

type AddGroup struct {
	Name   string
	Parent *uuid.UUID
}

type EditGroup struct {
	ID     uuid.UUID
	Name   string
	Parent *uuid.UUID
}

type DeleteGroup struct{ ID uuid.UUID }

type AddItem struct{ Draft vault.ItemDraft }

type EditItem struct {
	ID    uuid.UUID
	Draft vault.ItemDraft
}

type DeleteItem struct{ ID uuid.UUID }

// SearchItems filters items by query tokens, optionally within a group.
type SearchItems struct {
	Query string
	Group *uuid.UUID
}

// ImportVault merges entries from another vault file into the open one.
type ImportVault struct {
	Path     string
	Password string
}

// ExportVault writes a standalone copy of the open vault under a new
// password.
type ExportVault struct {
	Path     string
	Password string
}

type GeneratePassword struct{ Options generator.Options }

// CopySecret puts an item's password on the clipboard with a timed clear.
type CopySecret struct{ ID uuid.UUID }

// CopyUsername copies an item's username; usernames are not secret, so no
// timed clear.
type CopyUsername struct{ ID uuid.UUID }

// CopyTOTP computes the item's current one-time code and copies it.
type CopyTOTP struct{ ID uuid.UUID }

func (CreateVault) isIntent()      {}
func (UnlockVault) isIntent()      {}
func (LockVault) isIntent()        {}
func (SaveVault) isIntent()        {}
func (AddGroup) isIntent()         {}
func (EditGroup) isIntent()        {}
func (DeleteGroup) isIntent()      {}
func (AddItem) isIntent()          {}
func (EditItem) isIntent()         {}
func (DeleteItem) isIntent()       {}
func (SearchItems) isIntent()      {}
func (ImportVault) isIntent()      {}
func (ExportVault) isIntent()      {}
func (GeneratePassword) isIntent() {}
func (CopySecret) isIntent()       {}
func (CopyUsername) isIntent()     {}
func (CopyTOTP) isIntent()         {}

func (CreateVault) name() string      { return "create_vault" }
func (UnlockVault) name() string      { return "unlock_vault" }
func (LockVault) name() string        { return "lock_vault" }
func (SaveVault) name() string        { return "save_vault" }
func (AddGroup) name() string         { return "add_group" }
func (EditGroup) name() string        { return "edit_group" }
func (DeleteGroup) name() string      { return "delete_group" }
func (AddItem) name() string          { return "add_item" }
func (EditItem) name() string         { return "edit_item" }
func (DeleteItem) name() string       { return "delete_item" }
func (SearchItems) name() string      { return "search_items" }
func (ImportVault) name() string      { return "import_vault" }
func (ExportVault) name() string      { return "export_vault" }
func (GeneratePassword) name() string { return "generate_password" }
func (CopySecret) name() string       { return "copy_secret" }
func (CopyUsername) name() string     { return "copy_username" }
func (CopyTOTP) name() string         { return "copy_totp" }

// Outcome is what an intent produced. Only the fields relevant to the
// intent are populated.
type Outcome struct {
	Message  string
	Items    []vault.Item
	Item     *vault.Item
	Group    *vault.Group
	Password string
	Merged   int
}
