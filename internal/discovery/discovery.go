// Package discovery finds club page links on catalogue listing pages.
package discovery

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/clubmap/internal/club"
)

var (
	// /equipa/<slug> or /equipa/<slug>/<digits>
	slugLinkPattern = regexp.MustCompile(`^/equipa/[^/]+(?:/\d+)?/?$`)
	// team.php?id=<digits>
	queryLinkPattern = regexp.MustCompile(`^/team\.php$`)
	digitsPattern    = regexp.MustCompile(`^\d+$`)
)

// selectorGroups are tried in priority order. A later group is only
// consulted when every earlier group found no club links.
var selectorGroups = [][]string{
	{"table.table-striped a[href]", "table a[href]"},
	{"#page_main a[href]", "main a[href]", ".content a[href]"},
	{"a[href]"},
}

// Link is a discovered club page
type Link struct {
	ID   string
	URL  string
	Text string
}

// Index maps identifiers to club URLs in discovery order
type Index struct {
	links []Link
	byID  map[string]int
}

// NewIndex creates an empty index
func NewIndex() *Index {
	return &Index{byID: make(map[string]int)}
}

// Add inserts a link unless its identifier is already present.
// It reports whether the link was added.
func (idx *Index) Add(l Link) bool {
	if _, exists := idx.byID[l.ID]; exists {
		return false
	}
	idx.byID[l.ID] = len(idx.links)
	idx.links = append(idx.links, l)
	return true
}

// URL returns the source URL recorded for an identifier
func (idx *Index) URL(id string) (string, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return "", false
	}
	return idx.links[i].URL, true
}

// Links returns the links in discovery order
func (idx *Index) Links() []Link {
	return append([]Link(nil), idx.links...)
}

// Len returns the number of identifiers
func (idx *Index) Len() int {
	return len(idx.links)
}

// DiscoverHTML parses a listing page and discovers club links in it
func DiscoverHTML(body []byte, baseURL string, limit int) (*Index, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return Discover(doc, baseURL, limit)
}

// Discover scans a listing page for club links. URLs are resolved against
// baseURL and deduplicated; the first URL seen for each identifier wins.
// A limit of zero or less means no limit.
func Discover(doc *goquery.Document, baseURL string, limit int) (*Index, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}

	for _, group := range selectorGroups {
		idx := discoverGroup(doc, base, group, limit)
		if idx.Len() > 0 {
			return idx, nil
		}
	}
	return NewIndex(), nil
}

func discoverGroup(doc *goquery.Document, base *url.URL, selectors []string, limit int) *Index {
	idx := NewIndex()
	seenURL := make(map[string]bool)

	for _, selector := range selectors {
		full := false
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href, _ := sel.Attr("href")
			abs, ok := clubURL(base, href)
			if !ok || seenURL[abs] {
				return true
			}
			seenURL[abs] = true

			idx.Add(Link{
				ID:   club.IDFor(abs),
				URL:  abs,
				Text: strings.Join(strings.Fields(sel.Text()), " "),
			})
			if limit > 0 && idx.Len() >= limit {
				full = true
				return false
			}
			return true
		})
		if full {
			break
		}
	}
	return idx
}

// clubURL resolves href and reports whether it has one of the club page shapes
func clubURL(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	u := base.ResolveReference(ref)
	u.Fragment = ""
	if u.Host != base.Host && strings.TrimPrefix(u.Host, "www.") != strings.TrimPrefix(base.Host, "www.") {
		return "", false
	}

	switch {
	case slugLinkPattern.MatchString(u.Path):
		return u.String(), true
	case queryLinkPattern.MatchString(strings.ToLower(u.Path)) && digitsPattern.MatchString(u.Query().Get("id")):
		return u.String(), true
	}
	return "", false
}
