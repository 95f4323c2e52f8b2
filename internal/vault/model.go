package vault

import (
	"time"

	"github.com/google/uuid"
)

// Group is a named collection of items. Items reference their owning group;
// the invariant is that every non-nil reference resolves to an existing
// group.
type Group struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewGroup(name string, parent *uuid.UUID) Group {
	return Group{
		ID:        uuid.New(),
		Name:      name,
		ParentID:  parent,
		CreatedAt: time.Now().UTC(),
	}
}

// PasswordHistoryEntry records a superseded password so a user can recover
// a value overwritten by mistake.
type PasswordHistoryEntry struct {
	Password  string    `json:"password"`
	ChangedAt time.Time `json:"changed_at"`
}

type Item struct {
	ID         uuid.UUID              `json:"id"`
	GroupID    *uuid.UUID             `json:"group_id,omitempty"`
	Title      string                 `json:"title"`
	Username   string                 `json:"username"`
	Password   string                 `json:"password"`
	URL        string                 `json:"url"`
	Notes      string                 `json:"notes"`
	Tags       []string               `json:"tags,omitempty"`
	TOTPSecret string                 `json:"totp_secret,omitempty"`
	History    []PasswordHistoryEntry `json:"password_history,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	ModifiedAt time.Time              `json:"modified_at"`
}

func NewItem(title string, group *uuid.UUID) Item {
	now := time.Now().UTC()
	return Item{
		ID:         uuid.New(),
		GroupID:    group,
		Title:      title,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

type Meta struct {
	Version    uint32    `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Payload is the full decrypted vault content: the single unit of
// encryption. It reaches disk only through Service.Save, which rewrites the
// whole payload under a fresh nonce.
type Payload struct {
	Meta   Meta    `json:"meta"`
	Groups []Group `json:"groups"`
	Items  []Item  `json:"items"`
}

func NewPayload() *Payload {
	now := time.Now().UTC()
	return &Payload{
		Meta:   Meta{Version: 1, CreatedAt: now, ModifiedAt: now},
		Groups: []Group{},
		Items:  []Item{},
	}
}
