package match

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Normalize converts a raw list entry or extracted identifier to its
// canonical form: surrounding whitespace trimmed, leading '@' characters
// stripped, unicode-normalized and case-folded.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "@")
	s = strings.TrimSpace(s)
	return folder.String(norm.NFC.String(s))
}

// NormalizeLines turns raw list lines into normalized entries, dropping
// blank lines and '#' comments. Order is preserved, duplicates are not.
func NormalizeLines(lines []string) []string {
	entries := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		entry := Normalize(trimmed)
		if entry == "" {
			continue
		}
		if _, ok := seen[entry]; ok {
			continue
		}
		seen[entry] = struct{}{}
		entries = append(entries, entry)
	}
	return entries
}

// Matcher answers membership queries against a normalized identifier set.
// The set is immutable once built; a list reload builds a new Matcher and
// swaps the reference. An empty list yields an empty set, so every query
// answers false (fail-closed).
type Matcher struct {
	entries map[string]struct{}
}

func NewMatcher(lines []string) *Matcher {
	entries := make(map[string]struct{})
	for _, entry := range NormalizeLines(lines) {
		entries[entry] = struct{}{}
	}
	return &Matcher{entries: entries}
}

func (m *Matcher) Contains(identifier string) bool {
	_, ok := m.entries[Normalize(identifier)]
	return ok
}

func (m *Matcher) Size() int {
	return len(m.entries)
}

// Entries returns the normalized set sorted, for display purposes.
func (m *Matcher) Entries() []string {
	entries := make([]string, 0, len(m.entries))
	for entry := range m.entries {
		entries = append(entries, entry)
	}
	sort.Strings(entries)
	return entries
}
