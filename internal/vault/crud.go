package vault

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ItemDraft carries user-editable item fields between the UI and the
// service.
type ItemDraft struct {
	Title      string
	Username   string
	Password   string
	URL        string
	Notes      string
	Tags       []string
	TOTPSecret string
	GroupID    *uuid.UUID
}

// Groups returns the groups in their stored order.
func (s *Service) Groups() ([]Group, error) {
	p, err := s.currentPayload()
	if err != nil {
		return nil, err
	}
	return p.Groups, nil
}

// Items returns the items in their stored order.
func (s *Service) Items() ([]Item, error) {
	p, err := s.currentPayload()
	if err != nil {
		return nil, err
	}
	return p.Items, nil
}

// ItemsInGroup filters items by owning group; a nil group means all items.
func (s *Service) ItemsInGroup(group *uuid.UUID) ([]Item, error) {
	p, err := s.currentPayload()
	if err != nil {
		return nil, err
	}
	if group == nil {
		return p.Items, nil
	}
	var out []Item
	for _, it := range p.Items {
		if it.GroupID != nil && *it.GroupID == *group {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *Service) Item(id uuid.UUID) (Item, error) {
	p, err := s.currentPayload()
	if err != nil {
		return Item{}, err
	}
	for _, it := range p.Items {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, notFound(ErrItemNotFound, id)
}

func (s *Service) Group(id uuid.UUID) (Group, error) {
	p, err := s.currentPayload()
	if err != nil {
		return Group{}, err
	}
	for _, g := range p.Groups {
		if g.ID == id {
			return g, nil
		}
	}
	return Group{}, notFound(ErrGroupNotFound, id)
}

// AddGroup creates a group. Mutates the in-memory payload only.
func (s *Service) AddGroup(name string, parent *uuid.UUID) (Group, error) {
	p, err := s.currentPayload()
	if err != nil {
		return Group{}, err
	}
	if strings.TrimSpace(name) == "" {
		return Group{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if parent != nil && p.findGroup(*parent) < 0 {
		return Group{}, notFound(ErrGroupNotFound, *parent)
	}
	g := NewGroup(name, parent)
	if p.findGroup(g.ID) >= 0 {
		return Group{}, &ValidationError{Field: "id", Reason: "duplicate group id"}
	}
	p.Groups = append(p.Groups, g)
	s.dirty = true
	return g, nil
}

func (s *Service) EditGroup(id uuid.UUID, name string, parent *uuid.UUID) error {
	p, err := s.currentPayload()
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	i := p.findGroup(id)
	if i < 0 {
		return notFound(ErrGroupNotFound, id)
	}
	if parent != nil {
		if *parent == id {
			return &ValidationError{Field: "parent", Reason: "group cannot be its own parent"}
		}
		if p.findGroup(*parent) < 0 {
			return notFound(ErrGroupNotFound, *parent)
		}
	}
	p.Groups[i].Name = name
	p.Groups[i].ParentID = parent
	s.dirty = true
	return nil
}

// DeleteGroup removes a group and cascades to its contained items in the
// same operation, so no item is left orphaned.
func (s *Service) DeleteGroup(id uuid.UUID) error {
	p, err := s.currentPayload()
	if err != nil {
		return err
	}
	i := p.findGroup(id)
	if i < 0 {
		return notFound(ErrGroupNotFound, id)
	}
	p.Groups = append(p.Groups[:i], p.Groups[i+1:]...)

	kept := p.Items[:0]
	for _, it := range p.Items {
		if it.GroupID != nil && *it.GroupID == id {
			continue
		}
		kept = append(kept, it)
	}
	p.Items = kept

	// Subgroups of the removed group become top level.
	for j := range p.Groups {
		if p.Groups[j].ParentID != nil && *p.Groups[j].ParentID == id {
			p.Groups[j].ParentID = nil
		}
	}
	s.dirty = true
	return nil
}

// AddItem creates an item from a draft. Mutates the in-memory payload only.
func (s *Service) AddItem(draft ItemDraft) (Item, error) {
	p, err := s.currentPayload()
	if err != nil {
		return Item{}, err
	}
	if err := validateDraft(p, draft); err != nil {
		return Item{}, err
	}
	it := NewItem(draft.Title, draft.GroupID)
	applyDraft(&it, draft)
	if p.findItem(it.ID) >= 0 {
		return Item{}, &ValidationError{Field: "id", Reason: "duplicate item id"}
	}
	p.Items = append(p.Items, it)
	s.dirty = true
	return it, nil
}

// EditItem updates an item from a draft. A changed password pushes the old
// value onto the item's history.
func (s *Service) EditItem(id uuid.UUID, draft ItemDraft) error {
	p, err := s.currentPayload()
	if err != nil {
		return err
	}
	if err := validateDraft(p, draft); err != nil {
		return err
	}
	i := p.findItem(id)
	if i < 0 {
		return notFound(ErrItemNotFound, id)
	}
	it := &p.Items[i]
	if it.Password != draft.Password && it.Password != "" {
		it.History = append(it.History, PasswordHistoryEntry{
			Password:  it.Password,
			ChangedAt: time.Now().UTC(),
		})
	}
	applyDraft(it, draft)
	it.GroupID = draft.GroupID
	it.ModifiedAt = time.Now().UTC()
	s.dirty = true
	return nil
}

func (s *Service) DeleteItem(id uuid.UUID) error {
	p, err := s.currentPayload()
	if err != nil {
		return err
	}
	i := p.findItem(id)
	if i < 0 {
		return notFound(ErrItemNotFound, id)
	}
	p.Items = append(p.Items[:i], p.Items[i+1:]...)
	s.dirty = true
	return nil
}

func validateDraft(p *Payload, draft ItemDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if draft.GroupID != nil && p.findGroup(*draft.GroupID) < 0 {
		return notFound(ErrGroupNotFound, *draft.GroupID)
	}
	return nil
}

func applyDraft(it *Item, draft ItemDraft) {
	it.Title = draft.Title
	it.Username = draft.Username
	it.Password = draft.Password
	it.URL = draft.URL
	it.Notes = draft.Notes
	it.Tags = draft.Tags
	it.TOTPSecret = draft.TOTPSecret
}

func (p *Payload) findGroup(id uuid.UUID) int {
	for i, g := range p.Groups {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func (p *Payload) findItem(id uuid.UUID) int {
	for i, it := range p.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
