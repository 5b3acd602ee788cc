package engine

// itemState carries the classification markers for one item, keyed by
// the item's stable identity. The tree itself is externally owned, so
// this side-table is the only place the engine records anything.
//
// Invariant: unknown implies hidden.
type itemState struct {
	processed bool
	hidden    bool
	unknown   bool
}

type stateTable struct {
	states map[string]*itemState
}

func newStateTable() *stateTable {
	return &stateTable{states: make(map[string]*itemState)}
}

func (t *stateTable) get(key string) *itemState {
	st, ok := t.states[key]
	if !ok {
		st = &itemState{}
		t.states[key] = st
	}
	return st
}

// rearmUnknown clears the processed marker on every unknown item so the
// next pass re-attempts extraction. Hidden and unknown stay set, so the
// item remains suppressed in the interim. Resolved items are untouched,
// which is what keeps re-scans cheap.
func (t *stateTable) rearmUnknown() int {
	count := 0
	for _, st := range t.states {
		if st.unknown {
			st.processed = false
			count++
		}
	}
	return count
}

// clearProcessed re-arms every item, used when a membership reload is
// configured to force reclassification.
func (t *stateTable) clearProcessed() {
	for _, st := range t.states {
		st.processed = false
	}
}

// prune drops state for items no longer in the tree. An item that comes
// back is classified fresh, which costs one extraction and converges to
// the same decision.
func (t *stateTable) prune(seen map[string]struct{}) {
	for key := range t.states {
		if _, ok := seen[key]; !ok {
			delete(t.states, key)
		}
	}
}

func (t *stateTable) size() int {
	return len(t.states)
}
