package database

import (
	"time"
)

// Pass is one recorded scan over the tree. Telemetry only; the
// classification side table itself is never persisted.
type Pass struct {
	ID         string
	Trigger    string
	Candidates int
	Revealed   int
	Hidden     int
	Unknown    int
	Skipped    int
	Retried    int
	DurationMs int64
	CreatedAt  time.Time
}
