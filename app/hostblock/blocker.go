package hostblock

import (
	"fmt"
	"html"
	"log/slog"
	"os"

	"github.com/Gui-Oba/FocusAid/app/match"
)

const blockPage = `<!DOCTYPE html>
<html>
<head><title>Site blocked</title></head>
<body>
<h1>Site blocked</h1>
<p>%s is on your block list.</p>
</body>
</html>
`

// Blocker replaces the output page with a static notice when the
// captured host matches a block rule. Blocking is terminal: no
// filtering pass runs for a blocked host.
type Blocker struct {
	hosts      *match.HostMatcher
	outputPath string
}

func NewBlocker(rules []string, outputPath string) *Blocker {
	return &Blocker{
		hosts:      match.NewHostMatcher(rules),
		outputPath: outputPath,
	}
}

// ShouldBlock reports whether host matches any block rule, including
// wildcard rules covering subdomains.
func (b *Blocker) ShouldBlock(host string) bool {
	return b.hosts.Matches(host)
}

// Run writes the replacement page for a blocked host.
func (b *Blocker) Run(host string) error {
	page := fmt.Sprintf(blockPage, html.EscapeString(host))
	if err := os.WriteFile(b.outputPath, []byte(page), 0644); err != nil {
		return fmt.Errorf("failed to write block page: %w", err)
	}

	slog.Info("Host blocked, replacement page written", "host", host, "output", b.outputPath)
	return nil
}
