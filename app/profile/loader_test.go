package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_Validates(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Errorf("Default profile should validate, got: %v", err)
	}
}

func TestLoad_OverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yml")
	content := `
candidate_selector: "div.feed-entry"
suppress_labels:
  - "People you may know"
column_offset: 720
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	prof, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if prof.CandidateSelector != "div.feed-entry" {
		t.Errorf("Expected overridden candidate selector, got %q", prof.CandidateSelector)
	}
	if prof.ColumnOffset != 720 {
		t.Errorf("Expected overridden column offset 720, got %d", prof.ColumnOffset)
	}
	if len(prof.SuppressLabels) != 1 || prof.SuppressLabels[0] != "People you may know" {
		t.Errorf("Expected overridden suppress labels, got %v", prof.SuppressLabels)
	}
	// Untouched fields keep defaults.
	if prof.StoryLinkPrefix != "/stories/" {
		t.Errorf("Expected default story link prefix, got %q", prof.StoryLinkPrefix)
	}
	if prof.PlaceholderHeight != 400 {
		t.Errorf("Expected default placeholder height, got %d", prof.PlaceholderHeight)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/site.yml"); err == nil {
		t.Error("Expected error for missing profile file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	if err := os.WriteFile(path, []byte("candidate_selector: [unterminated"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestValidate_NegativeOffset(t *testing.T) {
	prof := Default()
	prof.ColumnOffset = -1
	if err := Validate(prof); err == nil {
		t.Error("Expected validation error for negative column offset")
	}
}
