package profile

// Profile holds the site-specific heuristics the engine scans with.
// Everything here describes markup shape, not policy: which nodes are
// feed entries, which link targets can never be a profile, which
// sections are unconditionally unwanted.
type Profile struct {
	// CandidateSelector matches one filterable feed entry.
	CandidateSelector string `yaml:"candidate_selector"`

	// ReservedSegments are first path segments that never identify an
	// account (post detail, explore, settings and similar).
	ReservedSegments []string `yaml:"reserved_segments"`

	// PermalinkSegments mark post/reel/story permalinks; links leading
	// with one of these are skipped during extraction.
	PermalinkSegments []string `yaml:"permalink_segments"`

	// StoryLinkPrefix identifies story links; the containing tray is
	// suppressed unconditionally.
	StoryLinkPrefix string `yaml:"story_link_prefix"`

	// SuppressLabels are exact (normalized) heading texts whose
	// sections are hidden outright.
	SuppressLabels []string `yaml:"suppress_labels"`

	// PlaceholderLabel is the heading that gets an inert spacer
	// inserted before it instead of being hidden, so the host page's
	// infinite scroll does not refill the space.
	PlaceholderLabel  string `yaml:"placeholder_label"`
	PlaceholderHeight int    `yaml:"placeholder_height"`

	// MainSelector locates the main content region; its first-level
	// children laid out past ColumnOffset are suppressed.
	MainSelector string `yaml:"main_selector"`
	ColumnOffset int    `yaml:"column_offset"`

	// PrePaintSelectors are hidden by an injected style rule before the
	// first pass to reduce flicker. Best effort only.
	PrePaintSelectors []string `yaml:"prepaint_selectors"`
}
