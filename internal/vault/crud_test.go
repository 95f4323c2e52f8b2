package vault

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestGroupCRUD(t *testing.T) {
	s := newTestService(t)

	g, err := s.AddGroup("Work", nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	groups, err := s.Groups()
	if err != nil {
		t.Fatalf("groups: %v", err)
	}
	if len(groups) != 1 || groups[0].Name != "Work" {
		t.Fatalf("groups = %+v", groups)
	}

	if err := s.EditGroup(g.ID, "Personal", nil); err != nil {
		t.Fatalf("edit: %v", err)
	}
	got, err := s.Group(g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Personal" {
		t.Fatalf("name = %q after edit", got.Name)
	}

	if err := s.DeleteGroup(g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	groups, _ = s.Groups()
	if len(groups) != 0 {
		t.Fatal("group not deleted")
	}
}

func TestItemCRUD(t *testing.T) {
	s := newTestService(t)

	it, err := s.AddItem(ItemDraft{
		Title:    "GitHub",
		Username: "user@example.com",
		Password: "secret",
		URL:      "https://github.com",
		Notes:    "work account",
		Tags:     []string{"dev"},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	err = s.EditItem(it.ID, ItemDraft{
		Title:    "GitHub Updated",
		Username: "new@example.com",
		Password: "new-secret",
		URL:      "https://github.com",
		Tags:     []string{"dev", "vcs"},
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	got, err := s.Item(it.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "GitHub Updated" {
		t.Fatalf("title = %q", got.Title)
	}
	if len(got.History) != 1 || got.History[0].Password != "secret" {
		t.Fatalf("history = %+v, want superseded password recorded", got.History)
	}

	if err := s.DeleteItem(it.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Item(it.ID); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("err = %v, want ErrItemNotFound", err)
	}
}

func TestEditItemUnchangedPasswordNoHistory(t *testing.T) {
	s := newTestService(t)
	it, err := s.AddItem(ItemDraft{Title: "Box", Password: "same"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.EditItem(it.ID, ItemDraft{Title: "Box2", Password: "same"}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	got, _ := s.Item(it.ID)
	if len(got.History) != 0 {
		t.Fatal("history grew without a password change")
	}
}

func TestValidationEmptyTitle(t *testing.T) {
	s := newTestService(t)

	var vErr *ValidationError
	if _, err := s.AddItem(ItemDraft{Title: "   "}); !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if _, err := s.AddGroup("", nil); !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}

	items, _ := s.Items()
	if len(items) != 0 {
		t.Fatal("invalid item slipped into the collection")
	}
}

func TestAddItemUnknownGroup(t *testing.T) {
	s := newTestService(t)
	bogus := uuid.New()
	if _, err := s.AddItem(ItemDraft{Title: "x", GroupID: &bogus}); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("err = %v, want ErrGroupNotFound", err)
	}
}

func TestDeleteGroupCascades(t *testing.T) {
	s := newTestService(t)

	g, err := s.AddGroup("Work", nil)
	if err != nil {
		t.Fatalf("add group: %v", err)
	}
	if _, err := s.AddItem(ItemDraft{Title: "In group", GroupID: &g.ID}); err != nil {
		t.Fatalf("add item: %v", err)
	}
	loose, err := s.AddItem(ItemDraft{Title: "No group"})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	if err := s.DeleteGroup(g.ID); err != nil {
		t.Fatalf("delete group: %v", err)
	}

	items, err := s.Items()
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 1 || items[0].ID != loose.ID {
		t.Fatalf("cascade failed, items = %+v", items)
	}
}

func TestDeleteGroupPromotesSubgroups(t *testing.T) {
	s := newTestService(t)
	parent, err := s.AddGroup("Parent", nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	child, err := s.AddGroup("Child", &parent.ID)
	if err != nil {
		t.Fatalf("add child: %v", err)
	}
	if err := s.DeleteGroup(parent.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := s.Group(child.ID)
	if err != nil {
		t.Fatalf("child gone: %v", err)
	}
	if got.ParentID != nil {
		t.Fatal("child still references deleted parent")
	}
}

func TestEditGroupSelfParent(t *testing.T) {
	s := newTestService(t)
	g, err := s.AddGroup("Loop", nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	var vErr *ValidationError
	if err := s.EditGroup(g.ID, "Loop", &g.ID); !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}

func TestItemsInGroup(t *testing.T) {
	s := newTestService(t)
	g, _ := s.AddGroup("Work", nil)
	if _, err := s.AddItem(ItemDraft{Title: "In group", GroupID: &g.ID}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddItem(ItemDraft{Title: "No group"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	in, err := s.ItemsInGroup(&g.ID)
	if err != nil {
		t.Fatalf("in group: %v", err)
	}
	if len(in) != 1 {
		t.Fatalf("in group = %d items, want 1", len(in))
	}
	all, err := s.ItemsInGroup(nil)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all = %d items, want 2", len(all))
	}
}

func TestDirtyFlag(t *testing.T) {
	s := newTestService(t)
	if s.IsDirty() {
		t.Fatal("dirty right after create")
	}
	if _, err := s.AddItem(ItemDraft{Title: "x"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !s.IsDirty() {
		t.Fatal("not dirty after mutation")
	}
	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if s.IsDirty() {
		t.Fatal("dirty after save")
	}
}
