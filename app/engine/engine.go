package engine

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Gui-Oba/FocusAid/app/database"
	"github.com/Gui-Oba/FocusAid/app/dom"
	"github.com/Gui-Oba/FocusAid/app/match"
	"github.com/Gui-Oba/FocusAid/app/profile"
)

// refreshable is implemented by file-backed trees that can re-read the
// snapshot. A synthetic test tree does not implement it, so RunPass
// scans it as-is.
type refreshable interface {
	Refresh() error
	InjectPrePaintStyle()
}

// renderable is implemented by trees that can serialize back to markup.
type renderable interface {
	Render() (string, error)
}

// Engine owns the scan pipeline: the side table, the classifier, the
// suppression routines and the membership set. Passes run strictly
// sequentially; the mutex extends that guarantee to the HTTP surface,
// which may reload the list or render concurrently.
type Engine struct {
	mu         sync.Mutex
	tree       dom.Tree
	prof       *profile.Profile
	matcher    *match.Matcher
	classifier *Classifier
	states     *stateTable
	passRepo   database.PassRepository
	outputPath string
}

// New builds an Engine. passRepo may be nil to disable pass telemetry;
// outputPath may be empty to disable writing the filtered page to disk.
func New(tree dom.Tree, matcher *match.Matcher, prof *profile.Profile,
	passRepo database.PassRepository, outputPath string) *Engine {
	states := newStateTable()
	return &Engine{
		tree:       tree,
		prof:       prof,
		matcher:    matcher,
		classifier: NewClassifier(tree, NewExtractor(prof), states),
		states:     states,
		passRepo:   passRepo,
		outputPath: outputPath,
	}
}

// RunPass executes one full scan: refresh the tree when it is
// file-backed, re-arm unknown items, classify every candidate, then run
// the suppression routines in order. Safe to call repeatedly; idempotent
// marking keeps observer feedback from looping.
func (e *Engine) RunPass(trigger string) PassStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()

	if r, ok := e.tree.(refreshable); ok {
		if err := r.Refresh(); err != nil {
			slog.Warn("Snapshot refresh failed, scanning previous tree", "error", err)
		} else {
			r.InjectPrePaintStyle()
		}
	}

	stats := PassStats{
		Trigger:   trigger,
		Retried:   e.states.rearmUnknown(),
		StartedAt: start,
	}

	items := e.tree.Candidates()
	stats.Candidates = len(items)

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		seen[item.Key()] = struct{}{}
		switch e.classifier.Run(item, e.matcher) {
		case OutcomeRevealed:
			stats.Revealed++
		case OutcomeHidden:
			stats.Hidden++
		case OutcomeUnknown:
			stats.Unknown++
		case OutcomeSkipped:
			stats.Skipped++
		}
	}
	e.states.prune(seen)

	for _, routine := range e.routines() {
		e.runRoutine(routine)
	}

	stats.Duration = time.Since(start)

	e.writeOutput()
	e.recordPass(stats)

	slog.Info("Pass completed",
		"trigger", trigger,
		"candidates", stats.Candidates,
		"revealed", stats.Revealed,
		"hidden", stats.Hidden,
		"unknown", stats.Unknown,
		"skipped", stats.Skipped,
		"retried", stats.Retried,
		"duration", stats.Duration)

	return stats
}

// Reload swaps the membership set wholesale. When reclassify is set,
// every item is re-armed so the next pass re-decides it against the new
// set; otherwise already-processed items keep their decision.
func (e *Engine) Reload(lines []string, reclassify bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.matcher = match.NewMatcher(lines)
	if reclassify {
		e.states.clearProcessed()
	}

	slog.Info("Membership list reloaded",
		"entries", e.matcher.Size(),
		"reclassify", reclassify)
}

// Render serializes the current filtered tree.
func (e *Engine) Render() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, ok := e.tree.(renderable)
	if !ok {
		return "", fmt.Errorf("tree does not support rendering")
	}
	return r.Render()
}

// AllowedCount reports the size of the current membership set.
func (e *Engine) AllowedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.matcher.Size()
}

// TrackedItems reports how many items the side table currently holds.
func (e *Engine) TrackedItems() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.states.size()
}

func (e *Engine) writeOutput() {
	if e.outputPath == "" {
		return
	}
	r, ok := e.tree.(renderable)
	if !ok {
		return
	}
	html, err := r.Render()
	if err != nil {
		slog.Error("Failed to render filtered page", "error", err)
		return
	}
	if err := os.WriteFile(e.outputPath, []byte(html), 0o644); err != nil {
		slog.Error("Failed to write filtered page", "path", e.outputPath, "error", err)
	}
}

func (e *Engine) recordPass(stats PassStats) {
	if e.passRepo == nil {
		return
	}
	pass := database.Pass{
		ID:         uuid.NewString(),
		Trigger:    stats.Trigger,
		Candidates: stats.Candidates,
		Revealed:   stats.Revealed,
		Hidden:     stats.Hidden,
		Unknown:    stats.Unknown,
		Skipped:    stats.Skipped,
		Retried:    stats.Retried,
		DurationMs: stats.Duration.Milliseconds(),
		CreatedAt:  stats.StartedAt.UTC(),
	}
	if err := e.passRepo.RecordPass(pass); err != nil {
		slog.Error("Failed to record pass", "error", err)
	}
}
