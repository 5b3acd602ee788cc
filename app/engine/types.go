package engine

import "time"

// Outcome is the result of classifying one item.
type Outcome int

const (
	// OutcomeSkipped means the item was already processed (or detached)
	// and no extraction ran.
	OutcomeSkipped Outcome = iota
	// OutcomeRevealed means the extracted identifier is a member.
	OutcomeRevealed
	// OutcomeHidden means the extracted identifier is not a member.
	OutcomeHidden
	// OutcomeUnknown means extraction failed; the item is hidden and
	// re-attempted on the next pass.
	OutcomeUnknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeRevealed:
		return "revealed"
	case OutcomeHidden:
		return "hidden"
	case OutcomeUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// PassStats summarizes one full scan over the tree.
type PassStats struct {
	Trigger    string
	Candidates int
	Revealed   int
	Hidden     int
	Unknown    int
	Skipped    int
	Retried    int
	StartedAt  time.Time
	Duration   time.Duration
}
