package match

import "strings"

// HostMatcher matches hostnames against a block list. Besides exact
// entries it supports two wildcard spellings with identical semantics:
// "*.example.com" and ".example.com" both match "example.com" and any
// of its subdomains. It shares no state with the identifier Matcher;
// it only serves the host-blocking feature.
type HostMatcher struct {
	exact    map[string]struct{}
	suffixes []string
}

func NewHostMatcher(lines []string) *HostMatcher {
	m := &HostMatcher{exact: make(map[string]struct{})}
	for _, line := range lines {
		rule := strings.ToLower(strings.TrimSpace(line))
		if rule == "" || strings.HasPrefix(rule, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(rule, "*."):
			m.addSuffix(rule[2:])
		case strings.HasPrefix(rule, "."):
			m.addSuffix(rule[1:])
		default:
			m.exact[rule] = struct{}{}
		}
	}
	return m
}

func (m *HostMatcher) addSuffix(suffix string) {
	if suffix == "" {
		return
	}
	m.suffixes = append(m.suffixes, suffix)
}

func (m *HostMatcher) Matches(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(host), "."))
	if host == "" {
		return false
	}
	if _, ok := m.exact[host]; ok {
		return true
	}
	for _, suffix := range m.suffixes {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return true
		}
	}
	return false
}

func (m *HostMatcher) Size() int {
	return len(m.exact) + len(m.suffixes)
}
