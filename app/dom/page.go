package dom

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Gui-Oba/FocusAid/app/match"
	"github.com/Gui-Oba/FocusAid/app/profile"
)

const (
	markerAttr        = "data-focusaid"
	markerHidden      = "hidden"
	markerPlaceholder = "placeholder"
	markerPrePaint    = "prepaint"
	savedStyleAttr    = "data-focusaid-style"
)

var _ Tree = (*Page)(nil)

// Page implements Tree over a parsed HTML snapshot. It is not safe for
// concurrent use; the engine serializes all access behind its own lock.
type Page struct {
	path string
	prof *profile.Profile
	doc  *goquery.Document
}

// Load parses the snapshot at path.
func Load(path string, prof *profile.Profile) (*Page, error) {
	p := &Page{path: path, prof: prof}
	if err := p.Refresh(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewFromReader parses a snapshot from r. Used by tests and by callers
// that already hold the markup in memory.
func NewFromReader(r io.Reader, prof *profile.Profile) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return &Page{prof: prof, doc: doc}, nil
}

// Refresh re-parses the snapshot from disk, replacing the current tree.
// On failure the previous tree stays in place so a half-written file
// never blanks a working page.
func (p *Page) Refresh() error {
	if p.path == "" {
		return fmt.Errorf("page has no backing file")
	}

	f, err := os.Open(p.path)
	if err != nil {
		return fmt.Errorf("failed to open page snapshot: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return fmt.Errorf("failed to parse page snapshot: %w", err)
	}

	p.doc = doc
	return nil
}

// Render serializes the current tree, including any suppression and
// placeholder edits, back to HTML.
func (p *Page) Render() (string, error) {
	out, err := goquery.OuterHtml(p.doc.Selection)
	if err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return out, nil
}

// InjectPrePaintStyle appends a style rule hiding the profile's
// pre-paint selectors, so suppressed structures never flash before the
// first pass. The engine must not rely on this having run.
func (p *Page) InjectPrePaintStyle() {
	if len(p.prof.PrePaintSelectors) == 0 {
		return
	}
	head := p.doc.Find("head").First()
	if head.Length() == 0 {
		return
	}
	if head.Find(fmt.Sprintf("style[%s=%q]", markerAttr, markerPrePaint)).Length() > 0 {
		return
	}
	rule := fmt.Sprintf("<style %s=%q>%s { display: none; }</style>",
		markerAttr, markerPrePaint, strings.Join(p.prof.PrePaintSelectors, ", "))
	head.AppendHtml(rule)
}

func (p *Page) Candidates() []Item {
	var items []Item
	p.doc.Find(p.prof.CandidateSelector).Each(func(i int, sel *goquery.Selection) {
		items = append(items, &nodeItem{sel: sel, key: p.keyFor(sel, i)})
	})
	return items
}

func (p *Page) Links(item Item) []string {
	node, ok := item.(*nodeItem)
	if !ok || !node.Attached() {
		return nil
	}
	var hrefs []string
	node.sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}

func (p *Page) SetVisible(item Item, visible bool) {
	node, ok := item.(*nodeItem)
	if !ok {
		return
	}
	if visible {
		reveal(node.sel)
	} else {
		hide(node.sel)
	}
}

func (p *Page) StoryTrays() []Item {
	selector := fmt.Sprintf("a[href^=%q]", p.prof.StoryLinkPrefix)
	seen := make(map[*html.Node]struct{})
	var trays []Item
	p.doc.Find(selector).Each(func(_ int, a *goquery.Selection) {
		tray := a.Closest("ul, nav")
		if tray.Length() == 0 {
			tray = a.Parent()
		}
		if tray.Length() == 0 {
			return
		}
		n := tray.Nodes[0]
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		trays = append(trays, &nodeItem{sel: tray, key: "tray-" + strconv.Itoa(len(trays))})
	})
	return trays
}

func (p *Page) SectionsLabeled(label string) []Item {
	want := normalizeLabel(label)
	if want == "" {
		return nil
	}
	var sections []Item
	p.headings().Each(func(i int, h *goquery.Selection) {
		if normalizeLabel(h.Text()) != want {
			return
		}
		section := h.Closest("section")
		if section.Length() == 0 {
			section = h.Parent()
		}
		if section.Length() == 0 {
			return
		}
		sections = append(sections, &nodeItem{sel: section, key: "section-" + strconv.Itoa(i)})
	})
	return sections
}

func (p *Page) InsertPlaceholderBefore(label string, height int) bool {
	want := normalizeLabel(label)
	if want == "" {
		return false
	}
	inserted := false
	p.headings().Each(func(_ int, h *goquery.Selection) {
		if normalizeLabel(h.Text()) != want {
			return
		}
		if h.Prev().AttrOr(markerAttr, "") == markerPlaceholder {
			return
		}
		h.BeforeHtml(fmt.Sprintf("<div %s=%q style=\"height: %dpx\"></div>",
			markerAttr, markerPlaceholder, height))
		inserted = true
	})
	return inserted
}

func (p *Page) ColumnsPastOffset(offset int) []Item {
	var columns []Item
	p.doc.Find(p.prof.MainSelector).First().Children().Each(func(i int, col *goquery.Selection) {
		if styleOffset(col.AttrOr("style", "")) > offset {
			columns = append(columns, &nodeItem{sel: col, key: "column-" + strconv.Itoa(i)})
		}
	})
	return columns
}

func (p *Page) headings() *goquery.Selection {
	return p.doc.Find(`h1, h2, h3, h4, h5, h6, [role="heading"]`)
}

// keyFor derives a stable identity for a candidate: an explicit id
// attribute when the markup carries one, else the item's own permalink,
// else a hash of its text, else its position. Permalink and hash keys
// survive re-parses, which is what lets processing state carry over.
func (p *Page) keyFor(sel *goquery.Selection, index int) string {
	if id := sel.AttrOr("data-id", sel.AttrOr("id", "")); id != "" {
		return "id:" + id
	}
	if permalink := p.firstPermalink(sel); permalink != "" {
		return "link:" + permalink
	}
	text := strings.Join(strings.Fields(sel.Text()), " ")
	if text != "" {
		sum := sha256.Sum256([]byte(text))
		return "hash:" + hex.EncodeToString(sum[:6])
	}
	return "index:" + strconv.Itoa(index)
}

func (p *Page) firstPermalink(sel *goquery.Selection) string {
	permalinks := make(map[string]struct{}, len(p.prof.PermalinkSegments))
	for _, seg := range p.prof.PermalinkSegments {
		permalinks[seg] = struct{}{}
	}
	result := ""
	sel.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := a.AttrOr("href", "")
		u, err := url.Parse(href)
		if err != nil {
			return true
		}
		segments := pathSegments(u.Path)
		if len(segments) == 0 {
			return true
		}
		if _, ok := permalinks[strings.ToLower(segments[0])]; ok {
			result = u.Path
			return false
		}
		return true
	})
	return result
}

type nodeItem struct {
	sel *goquery.Selection
	key string
}

func (i *nodeItem) Key() string {
	return i.key
}

func (i *nodeItem) Attached() bool {
	if len(i.sel.Nodes) == 0 {
		return false
	}
	for n := i.sel.Nodes[0]; n != nil; n = n.Parent {
		if n.Type == html.DocumentNode {
			return true
		}
	}
	return false
}

func hide(sel *goquery.Selection) {
	if sel.AttrOr(markerAttr, "") == markerHidden {
		return
	}
	if style, ok := sel.Attr("style"); ok {
		sel.SetAttr(savedStyleAttr, style)
	}
	sel.SetAttr(markerAttr, markerHidden)
	sel.SetAttr("style", "display: none !important")
}

func reveal(sel *goquery.Selection) {
	if sel.AttrOr(markerAttr, "") != markerHidden {
		return
	}
	sel.RemoveAttr(markerAttr)
	if saved, ok := sel.Attr(savedStyleAttr); ok {
		sel.SetAttr("style", saved)
		sel.RemoveAttr(savedStyleAttr)
	} else {
		sel.RemoveAttr("style")
	}
}

// normalizeLabel collapses whitespace and case-folds a heading text so
// "Suggested   for you" and "suggested for you" compare equal.
func normalizeLabel(s string) string {
	return match.Normalize(strings.Join(strings.Fields(s), " "))
}

func pathSegments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// styleOffset recovers the horizontal position the capture process
// inlined on a column (left or margin-left, in px). Returns -1 when the
// style carries no usable offset.
func styleOffset(style string) int {
	offset := -1
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "left" && name != "margin-left" {
			continue
		}
		value = strings.TrimSpace(value)
		value = strings.TrimSuffix(value, "px")
		if px, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && px > offset {
			offset = px
		}
	}
	return offset
}
