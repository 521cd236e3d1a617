package extract

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/clubmap/internal/club"
)

// DefaultBrand is the catalogue site's own name, rejected as a club name
const DefaultBrand = "zerozero"

// ErrNoName is returned when no candidate club name passes validation.
// The page yields no record.
var ErrNoName = errors.New("no valid club name")

// Options controls extraction
type Options struct {
	// Brand is the site's brand string; titles are stripped of it and names
	// equal to it are rejected
	Brand string
	// SiteOrigin resolves relative image URLs. Defaults to the page's origin.
	SiteOrigin string
	// Strict raises the minimum name length from 2 to 3
	Strict bool
}

// strategy is one way of finding a field value
type strategy func(p *page) (string, bool)

// firstOf runs strategies in order and returns the first success
func firstOf(p *page, strategies []strategy) (string, bool) {
	for _, s := range strategies {
		if v, ok := s(p); ok {
			return v, true
		}
	}
	return "", false
}

// image is an <img> with the attributes the heuristics look at
type image struct {
	src    string // absolute
	alt    string
	title  string
	width  int
	height int
}

// text returns the folded src/alt/title blob used for keyword matching
func (img image) text() string {
	return fold(img.src + " " + img.alt + " " + img.title)
}

// page is the extraction state for one document
type page struct {
	doc    *goquery.Document
	url    string
	origin *url.URL
	opts   Options
	images []image
	rows   [][2]string
}

// Name, crest and venue strategies in priority order
var (
	nameStrategies  = []strategy{nameFromTitle, nameFromHeading, nameFromLabel, nameFromSlug}
	crestStrategies = []strategy{crestFromCDN, crestFromKeywords, crestFromShape}
	venueStrategies = []strategy{venueFromLink, venueFromTable}
)

// ExtractHTML parses body and extracts a club record from it
func ExtractHTML(body []byte, pageURL string, opts Options) (*club.Record, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return Extract(doc, pageURL, opts)
}

// Extract builds a club record from a parsed page. It returns ErrNoName
// when no valid name is found; every other field is optional.
func Extract(doc *goquery.Document, pageURL string, opts Options) (*club.Record, error) {
	p, err := newPage(doc, pageURL, opts)
	if err != nil {
		return nil, err
	}

	name, ok := firstOf(p, nameStrategies)
	if !ok {
		return nil, fmt.Errorf("%s: %w", pageURL, ErrNoName)
	}

	rec := &club.Record{
		ID:        club.IDFor(pageURL),
		Name:      name,
		SourceURL: pageURL,
	}
	rec.Crest, _ = firstOf(p, crestStrategies)
	if venue, ok := firstOf(p, venueStrategies); ok && !p.blacklisted(venue) {
		rec.Venue = venue
	}
	rec.Address, _ = addressFromTable(p)
	rec.Kits = kits(p)

	return rec, nil
}

func newPage(doc *goquery.Document, pageURL string, opts Options) (*page, error) {
	if opts.Brand == "" {
		opts.Brand = DefaultBrand
	}

	originRaw := opts.SiteOrigin
	if originRaw == "" {
		originRaw = pageURL
	}
	u, err := url.Parse(originRaw)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid page URL %q", originRaw)
	}
	origin := &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}
	if origin.Scheme == "" {
		origin.Scheme = "https"
	}

	p := &page{doc: doc, url: pageURL, origin: origin, opts: opts}
	p.images = p.collectImages()
	p.rows = p.collectRows()
	return p, nil
}

// collectImages reads every <img> once, in document order
func (p *page) collectImages() []image {
	var images []image
	p.doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if strings.TrimSpace(src) == "" || strings.HasPrefix(strings.ToLower(strings.TrimSpace(src)), "data:") {
			// lazy-loaded images keep the real URL in data-src
			src, _ = sel.Attr("data-src")
		}
		abs := resolveURL(p.origin, src)
		if abs == "" {
			return
		}
		alt, _ := sel.Attr("alt")
		title, _ := sel.Attr("title")
		images = append(images, image{
			src:    abs,
			alt:    cleanText(alt),
			title:  cleanText(title),
			width:  intAttr(sel, "width"),
			height: intAttr(sel, "height"),
		})
	})
	return images
}

// collectRows reads every table row with at least two cells as
// (label, value) pairs of the first two cells
func (p *page) collectRows() [][2]string {
	var rows [][2]string
	p.doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td, th")
		if cells.Length() < 2 {
			return
		}
		label := cleanText(cells.Eq(0).Text())
		value := cleanText(cells.Eq(1).Text())
		rows = append(rows, [2]string{label, value})
	})
	return rows
}

// rowValue returns the value of the first row whose label has a word
// starting with one of labels, so "Localidade" matches "local" but
// "Capacity" does not match "city"
func (p *page) rowValue(labels []string, accept func(string) bool) (string, bool) {
	for _, row := range p.rows {
		if !hasTokenPrefix(tokens(fold(row[0])), labels) {
			continue
		}
		if accept(row[1]) {
			return row[1], true
		}
	}
	return "", false
}

// blacklisted reports whether s is site chrome or the brand itself
func (p *page) blacklisted(s string) bool {
	f := fold(s)
	if f == "" {
		return true
	}
	if navigationBlacklist[f] {
		return true
	}
	brand := fold(p.opts.Brand)
	return f == brand || strings.TrimSuffix(f, ".pt") == brand || strings.TrimSuffix(f, ".com") == brand
}

func intAttr(sel *goquery.Selection, name string) int {
	v, ok := sel.Attr(name)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	if err != nil {
		return 0
	}
	return n
}
