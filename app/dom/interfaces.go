package dom

// Item is a handle to one node in the externally-owned tree. The tree
// is rewritten by the capture process at any time, so a handle may be
// detached by the time it is used; every operation on a detached item
// is a no-op.
type Item interface {
	// Key is a stable identity for the item, used to carry processing
	// state across re-parses of the snapshot.
	Key() string

	// Attached reports whether the item is still part of the tree.
	Attached() bool
}

// Tree is the minimal view of the page the engine needs. The engine
// never touches markup directly; everything it does goes through these
// capabilities, which keeps it testable against a synthetic tree.
type Tree interface {
	// Candidates enumerates the filterable feed entries in document order.
	Candidates() []Item

	// Links returns the link targets under item in document order.
	Links(item Item) []string

	// SetVisible toggles the item's presentation.
	SetVisible(item Item, visible bool)

	// StoryTrays returns the tray regions adjacent to story links.
	StoryTrays() []Item

	// SectionsLabeled returns the sections whose heading text, after
	// normalization, equals label exactly.
	SectionsLabeled(label string) []Item

	// InsertPlaceholderBefore inserts a fixed-height inert spacer before
	// the heading matching label, guarding against duplicate insertion.
	// Reports whether a spacer was inserted.
	InsertPlaceholderBefore(label string, height int) bool

	// ColumnsPastOffset returns the first-level children of the main
	// region laid out past the given horizontal offset.
	ColumnsPastOffset(offset int) []Item
}
