package engine

import "log/slog"

// suppressionRoutine is one unconditional heuristic scan. Routines are
// independent of membership state and safe to re-run every pass.
type suppressionRoutine struct {
	name string
	run  func()
}

// routines returns the suppression scans in their required order. The
// order is a real constraint, not incidental: the placeholder must go
// in after label-based removal so it is not itself hidden, and column
// suppression measures layout after trays are gone.
func (e *Engine) routines() []suppressionRoutine {
	return []suppressionRoutine{
		{name: "story_trays", run: e.suppressStoryTrays},
		{name: "labeled_sections", run: e.suppressLabeledSections},
		{name: "anti_refill_placeholder", run: e.insertAntiRefillPlaceholder},
		{name: "layout_columns", run: e.suppressLayoutColumns},
	}
}

// runRoutine isolates a routine failure: one broken heuristic must not
// abort the remaining routines or the pass.
func (e *Engine) runRoutine(routine suppressionRoutine) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Suppression routine failed", "routine", routine.name, "panic", r)
		}
	}()
	routine.run()
}

func (e *Engine) suppressStoryTrays() {
	for _, tray := range e.tree.StoryTrays() {
		e.tree.SetVisible(tray, false)
	}
}

func (e *Engine) suppressLabeledSections() {
	for _, label := range e.prof.SuppressLabels {
		for _, section := range e.tree.SectionsLabeled(label) {
			e.tree.SetVisible(section, false)
		}
	}
}

// insertAntiRefillPlaceholder keeps the "more suggestions" block's
// height occupied instead of hiding it, so the host page's infinite
// scroll does not immediately refill the space with more unwanted
// content.
func (e *Engine) insertAntiRefillPlaceholder() {
	if e.prof.PlaceholderLabel == "" {
		return
	}
	e.tree.InsertPlaceholderBefore(e.prof.PlaceholderLabel, e.prof.PlaceholderHeight)
}

func (e *Engine) suppressLayoutColumns() {
	if e.prof.ColumnOffset <= 0 {
		return
	}
	for _, column := range e.tree.ColumnsPastOffset(e.prof.ColumnOffset) {
		e.tree.SetVisible(column, false)
	}
}
