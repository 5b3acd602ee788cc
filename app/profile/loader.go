package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default returns the built-in profile for the target site's feed markup.
func Default() *Profile {
	return &Profile{
		CandidateSelector: "article",
		ReservedSegments: []string{
			"p", "reel", "reels", "stories", "explore", "accounts",
			"direct", "about", "legal", "developer", "directory", "web",
		},
		PermalinkSegments: []string{"p", "reel", "reels", "stories"},
		StoryLinkPrefix:   "/stories/",
		SuppressLabels:    []string{"suggested for you", "sponsored"},
		PlaceholderLabel:  "more suggestions",
		PlaceholderHeight: 400,
		MainSelector:      "main",
		ColumnOffset:      600,
		PrePaintSelectors: []string{
			"article",
			"main > div > div:nth-child(2)",
		},
	}
}

// Load reads a YAML profile from path. Fields left empty fall back to
// the built-in defaults, so a profile only needs to override what the
// site changed.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	prof := Default()
	if err := yaml.Unmarshal(data, prof); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	applyDefaults(prof)

	if err := Validate(prof); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	return prof, nil
}

func applyDefaults(prof *Profile) {
	defaults := Default()
	if prof.CandidateSelector == "" {
		prof.CandidateSelector = defaults.CandidateSelector
	}
	if len(prof.ReservedSegments) == 0 {
		prof.ReservedSegments = defaults.ReservedSegments
	}
	if len(prof.PermalinkSegments) == 0 {
		prof.PermalinkSegments = defaults.PermalinkSegments
	}
	if prof.StoryLinkPrefix == "" {
		prof.StoryLinkPrefix = defaults.StoryLinkPrefix
	}
	if prof.PlaceholderHeight == 0 {
		prof.PlaceholderHeight = defaults.PlaceholderHeight
	}
	if prof.MainSelector == "" {
		prof.MainSelector = defaults.MainSelector
	}
	if prof.ColumnOffset == 0 {
		prof.ColumnOffset = defaults.ColumnOffset
	}
}

func Validate(prof *Profile) error {
	if prof == nil {
		return fmt.Errorf("profile is nil")
	}

	requiredFields := map[string]string{
		"candidate selector": prof.CandidateSelector,
		"story link prefix":  prof.StoryLinkPrefix,
		"main selector":      prof.MainSelector,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	nonNegativeFields := map[string]int{
		"placeholder height": prof.PlaceholderHeight,
		"column offset":      prof.ColumnOffset,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	return nil
}
