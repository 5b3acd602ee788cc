package engine

import (
	"net/url"
	"strings"

	"github.com/Gui-Oba/FocusAid/app/match"
	"github.com/Gui-Oba/FocusAid/app/profile"
)

// Extractor recovers the owning account handle from an item's links.
// The heuristic is "first plausible profile-like link": walk the link
// targets in document order, skip anything reserved or pointing at a
// post/reel/story permalink, and take the first path segment of the
// first survivor. Best effort; a miss is an expected outcome handled by
// the retry policy, not an error.
type Extractor struct {
	reserved   map[string]struct{}
	permalinks map[string]struct{}
}

func NewExtractor(prof *profile.Profile) *Extractor {
	e := &Extractor{
		reserved:   make(map[string]struct{}, len(prof.ReservedSegments)),
		permalinks: make(map[string]struct{}, len(prof.PermalinkSegments)),
	}
	for _, seg := range prof.ReservedSegments {
		e.reserved[strings.ToLower(seg)] = struct{}{}
	}
	for _, seg := range prof.PermalinkSegments {
		e.permalinks[strings.ToLower(seg)] = struct{}{}
	}
	return e
}

// Run returns the normalized identifier, or "" when no link survives
// filtering.
func (e *Extractor) Run(links []string) string {
	for _, href := range links {
		u, err := url.Parse(href)
		if err != nil {
			continue
		}
		if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
			continue
		}
		segments := pathSegments(u.Path)
		if len(segments) == 0 {
			continue
		}
		first := strings.ToLower(segments[0])
		if _, ok := e.permalinks[first]; ok {
			continue
		}
		if _, ok := e.reserved[first]; ok {
			continue
		}
		if id := match.Normalize(first); id != "" {
			return id
		}
	}
	return ""
}

func pathSegments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
