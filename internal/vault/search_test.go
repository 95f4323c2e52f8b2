package vault

import "testing"

func seedSearchData(t *testing.T) *Service {
	t.Helper()
	s := newTestService(t)
	drafts := []ItemDraft{
		{Title: "GitHub", Username: "user@example.com", URL: "https://github.com", Tags: []string{"dev"}},
		{Title: "Gmail", Username: "user@gmail.com", Notes: "personal mail", Tags: []string{"email"}},
		{Title: "Bank", Username: "customer-1", URL: "https://bank.example", Password: "github"},
	}
	for _, d := range drafts {
		if _, err := s.AddItem(d); err != nil {
			t.Fatalf("add %q: %v", d.Title, err)
		}
	}
	return s
}

func TestSearchSingleToken(t *testing.T) {
	s := seedSearchData(t)
	got, err := s.Search("git")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Title != "GitHub" {
		t.Fatalf("results = %+v", got)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	s := seedSearchData(t)
	for _, q := range []string{"github", "GITHUB", "GitHub", "gItHuB"} {
		got, err := s.Search(q)
		if err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
		if len(got) != 1 {
			t.Fatalf("search %q = %d results, want 1", q, len(got))
		}
	}
}

func TestSearchAllTokensMustMatch(t *testing.T) {
	s := seedSearchData(t)

	got, err := s.Search("user example")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Title != "GitHub" {
		t.Fatalf("AND semantics broken: %+v", got)
	}

	got, err = s.Search("user nonexistent")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("partial match returned results: %+v", got)
	}
}

func TestSearchMatchesAllFields(t *testing.T) {
	s := seedSearchData(t)
	cases := map[string]string{
		"gmail.com":     "Gmail", // username
		"bank.example":  "Bank",  // url
		"personal mail": "Gmail", // notes
		"email":         "Gmail", // tag
	}
	for q, want := range cases {
		got, err := s.Search(q)
		if err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
		if len(got) != 1 || got[0].Title != want {
			t.Fatalf("search %q = %+v, want %s", q, got, want)
		}
	}
}

func TestSearchNeverMatchesPassword(t *testing.T) {
	s := seedSearchData(t)
	// "github" appears in the Bank item's password only; it must not match.
	got, err := s.Search("github")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for _, it := range got {
		if it.Title == "Bank" {
			t.Fatal("search matched a password field")
		}
	}
}

func TestSearchEmptyQueryReturnsAllInOrder(t *testing.T) {
	s := seedSearchData(t)
	got, err := s.Search("")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := []string{"GitHub", "Gmail", "Bank"}
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d", len(got), len(want))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("result %d = %q, want %q (order not preserved)", i, got[i].Title, title)
		}
	}
}

func TestSearchPreservesOrder(t *testing.T) {
	s := seedSearchData(t)
	got, err := s.Search("user")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 || got[0].Title != "GitHub" || got[1].Title != "Gmail" {
		t.Fatalf("order not preserved: %+v", got)
	}
}

func TestSearchInGroup(t *testing.T) {
	s := newTestService(t)
	g, _ := s.AddGroup("Work", nil)
	if _, err := s.AddItem(ItemDraft{Title: "Jira", GroupID: &g.ID}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddItem(ItemDraft{Title: "Jira personal"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := s.SearchInGroup("jira", &g.ID)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Jira" {
		t.Fatalf("results = %+v", got)
	}
}
