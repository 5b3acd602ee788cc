package dom

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Gui-Oba/FocusAid/app/profile"
)

const fixturePage = `<!DOCTYPE html>
<html>
<head><title>Feed</title></head>
<body>
<nav><a href="/stories/alice/123/">alice's story</a></nav>
<main>
  <div style="left: 0px">
    <article data-id="post-1">
      <a href="/alice/">alice</a>
      <a href="/p/abc123/">permalink</a>
    </article>
    <article>
      <a href="/p/def456/">permalink</a>
      <a href="/bob/">bob</a>
    </article>
  </div>
  <div style="left: 800px">
    <section>
      <h2>Suggested for you</h2>
      <div>suggestions</div>
    </section>
  </div>
</main>
<section>
  <h3>More suggestions</h3>
  <div>even more</div>
</section>
</body>
</html>`

func newTestPage(t *testing.T, markup string) *Page {
	t.Helper()
	page, err := NewFromReader(strings.NewReader(markup), profile.Default())
	if err != nil {
		t.Fatalf("Failed to parse fixture page: %v", err)
	}
	return page
}

func TestPage_Candidates(t *testing.T) {
	page := newTestPage(t, fixturePage)

	items := page.Candidates()
	if len(items) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(items))
	}

	if items[0].Key() != "id:post-1" {
		t.Errorf("Expected explicit id key, got %q", items[0].Key())
	}
	if items[1].Key() != "link:/p/def456/" {
		t.Errorf("Expected permalink key, got %q", items[1].Key())
	}
	for _, item := range items {
		if !item.Attached() {
			t.Errorf("Candidate %q should be attached", item.Key())
		}
	}
}

func TestPage_KeysStableAcrossReparse(t *testing.T) {
	first := newTestPage(t, fixturePage)
	second := newTestPage(t, fixturePage)

	var firstKeys, secondKeys []string
	for _, item := range first.Candidates() {
		firstKeys = append(firstKeys, item.Key())
	}
	for _, item := range second.Candidates() {
		secondKeys = append(secondKeys, item.Key())
	}

	if !reflect.DeepEqual(firstKeys, secondKeys) {
		t.Errorf("Keys should be stable across re-parses: %v vs %v", firstKeys, secondKeys)
	}
}

func TestPage_LinksInDocumentOrder(t *testing.T) {
	page := newTestPage(t, fixturePage)
	items := page.Candidates()

	links := page.Links(items[0])
	expected := []string{"/alice/", "/p/abc123/"}
	if !reflect.DeepEqual(links, expected) {
		t.Errorf("Expected links %v, got %v", expected, links)
	}
}

func TestPage_SetVisibleRoundTrip(t *testing.T) {
	page := newTestPage(t, fixturePage)
	item := page.Candidates()[0].(*nodeItem)

	page.SetVisible(item, false)
	if style := item.sel.AttrOr("style", ""); !strings.Contains(style, "display: none") {
		t.Errorf("Expected hidden style, got %q", style)
	}
	if item.sel.AttrOr(markerAttr, "") != markerHidden {
		t.Error("Expected hidden marker to be set")
	}

	// Hiding twice must not clobber the saved style.
	page.SetVisible(item, false)

	page.SetVisible(item, true)
	if style := item.sel.AttrOr("style", ""); strings.Contains(style, "display: none") {
		t.Errorf("Expected visible style, got %q", style)
	}
	if item.sel.AttrOr(markerAttr, "") != "" {
		t.Error("Expected hidden marker to be cleared")
	}
}

func TestPage_SetVisibleRestoresOriginalStyle(t *testing.T) {
	markup := `<html><body><article style="color: red"><a href="/alice/">a</a></article></body></html>`
	page := newTestPage(t, markup)
	item := page.Candidates()[0].(*nodeItem)

	page.SetVisible(item, false)
	page.SetVisible(item, true)

	if style := item.sel.AttrOr("style", ""); style != "color: red" {
		t.Errorf("Expected original style restored, got %q", style)
	}
}

func TestPage_StoryTrays(t *testing.T) {
	page := newTestPage(t, fixturePage)

	trays := page.StoryTrays()
	if len(trays) != 1 {
		t.Fatalf("Expected 1 story tray, got %d", len(trays))
	}
}

func TestPage_SectionsLabeled(t *testing.T) {
	page := newTestPage(t, fixturePage)

	sections := page.SectionsLabeled("Suggested For You")
	if len(sections) != 1 {
		t.Fatalf("Expected 1 labeled section (case-insensitive), got %d", len(sections))
	}

	if got := page.SectionsLabeled("nonexistent label"); len(got) != 0 {
		t.Errorf("Expected no sections for unknown label, got %d", len(got))
	}
}

func TestPage_InsertPlaceholderBefore(t *testing.T) {
	page := newTestPage(t, fixturePage)

	if !page.InsertPlaceholderBefore("More suggestions", 400) {
		t.Fatal("Expected placeholder to be inserted on first call")
	}
	if page.InsertPlaceholderBefore("More suggestions", 400) {
		t.Error("Expected second insertion to be skipped via marker check")
	}

	html, err := page.Render()
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if count := strings.Count(html, markerPlaceholder); count != 1 {
		t.Errorf("Expected exactly 1 placeholder in rendered output, got %d", count)
	}
	if !strings.Contains(html, "height: 400px") {
		t.Error("Expected placeholder height in rendered output")
	}
}

func TestPage_ColumnsPastOffset(t *testing.T) {
	page := newTestPage(t, fixturePage)

	columns := page.ColumnsPastOffset(600)
	if len(columns) != 1 {
		t.Fatalf("Expected 1 column past offset, got %d", len(columns))
	}

	if got := page.ColumnsPastOffset(900); len(got) != 0 {
		t.Errorf("Expected no columns past 900, got %d", len(got))
	}
}

func TestPage_InjectPrePaintStyle(t *testing.T) {
	page := newTestPage(t, fixturePage)

	page.InjectPrePaintStyle()
	page.InjectPrePaintStyle() // idempotent

	html, err := page.Render()
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if count := strings.Count(html, markerPrePaint); count != 1 {
		t.Errorf("Expected exactly 1 pre-paint style, got %d", count)
	}
}

func TestStyleOffset(t *testing.T) {
	cases := map[string]int{
		"left: 800px":                  800,
		"margin-left: 640px":           640,
		"color: red":                   -1,
		"":                             -1,
		"LEFT: 700px; color: blue":     700,
		"left: not-a-number":           -1,
		"width: 300px; left: 120px":    120,
	}

	for style, expected := range cases {
		if got := styleOffset(style); got != expected {
			t.Errorf("styleOffset(%q) = %d, expected %d", style, got, expected)
		}
	}
}
