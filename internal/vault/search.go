package vault

import (
	"strings"

	"github.com/google/uuid"
)

// Search returns items where every whitespace-separated token of query
// appears, case-insensitively, in at least one of title, username, URL,
// notes or tags. Passwords are never searched. An empty query returns all
// items; results keep the stored order — search filters, never reorders.
func (s *Service) Search(query string) ([]Item, error) {
	p, err := s.currentPayload()
	if err != nil {
		return nil, err
	}
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return p.Items, nil
	}

	var out []Item
	for _, it := range p.Items {
		if matchesAll(it, tokens) {
			out = append(out, it)
		}
	}
	return out, nil
}

// SearchInGroup restricts Search results to a single group; a nil group
// searches the whole vault.
func (s *Service) SearchInGroup(query string, group *uuid.UUID) ([]Item, error) {
	results, err := s.Search(query)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return results, nil
	}
	var out []Item
	for _, it := range results {
		if it.GroupID != nil && *it.GroupID == *group {
			out = append(out, it)
		}
	}
	return out, nil
}

func matchesAll(it Item, tokens []string) bool {
	haystack := strings.ToLower(strings.Join(append([]string{
		it.Title, it.Username, it.URL, it.Notes,
	}, it.Tags...), " "))
	for _, tok := range tokens {
		if !strings.Contains(haystack, tok) {
			return false
		}
	}
	return true
}
