package engine

import (
	"github.com/Gui-Oba/FocusAid/app/dom"
	"github.com/Gui-Oba/FocusAid/app/match"
)

// Classifier composes the Extractor and the membership Matcher to
// decide one item's visibility, recording the decision in the side
// table so re-visits are idempotent.
type Classifier struct {
	tree      dom.Tree
	extractor *Extractor
	states    *stateTable
}

func NewClassifier(tree dom.Tree, extractor *Extractor, states *stateTable) *Classifier {
	return &Classifier{
		tree:      tree,
		extractor: extractor,
		states:    states,
	}
}

// Run classifies item against matcher. State and presentation are
// updated together; there is no separate render step.
func (c *Classifier) Run(item dom.Item, matcher *match.Matcher) Outcome {
	if !item.Attached() {
		return OutcomeSkipped
	}

	st := c.states.get(item.Key())
	if st.processed {
		// A re-parsed snapshot loses earlier presentation edits, so
		// re-assert the recorded decision. No extraction runs here.
		c.tree.SetVisible(item, !st.hidden)
		return OutcomeSkipped
	}
	st.processed = true

	identifier := c.extractor.Run(c.tree.Links(item))
	switch {
	case identifier == "":
		// Extraction failure hides by default (fail-closed) and stays
		// eligible for retry on the next pass.
		st.hidden = true
		st.unknown = true
		c.tree.SetVisible(item, false)
		return OutcomeUnknown
	case matcher.Contains(identifier):
		st.hidden = false
		st.unknown = false
		c.tree.SetVisible(item, true)
		return OutcomeRevealed
	default:
		st.hidden = true
		st.unknown = false
		c.tree.SetVisible(item, false)
		return OutcomeHidden
	}
}
