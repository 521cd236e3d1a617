package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/clubmap/internal/club"
)

// titleSeparator splits "Benfica :: Perfil :: zerozero.pt" style titles
var titleSeparator = regexp.MustCompile(`\s+(?:\||::|-|–|—|·|»)\s+`)

// validName reports whether s can be stored as a club name
func (p *page) validName(s string) bool {
	n := utf8.RuneCountInString(s)
	minLen := 2
	if p.opts.Strict {
		minLen = 3
	}
	if n < minLen || n > nameMaxLen {
		return false
	}
	if p.blacklisted(s) {
		return false
	}
	f := fold(s)
	for _, prefix := range boilerplatePrefixes {
		if strings.HasPrefix(f, prefix) {
			return false
		}
	}
	return true
}

// nameFromTitle takes the first non-brand segment of <title>
func nameFromTitle(p *page) (string, bool) {
	title := cleanText(p.doc.Find("title").First().Text())
	if title == "" {
		return "", false
	}
	brand := fold(p.opts.Brand)
	for _, part := range titleSeparator.Split(title, -1) {
		part = cleanText(part)
		if part == "" || strings.Contains(fold(part), brand) {
			continue
		}
		if p.validName(part) {
			return part, true
		}
	}
	return "", false
}

// nameFromHeading takes the first valid h1, then h2
func nameFromHeading(p *page) (string, bool) {
	for _, sel := range []string{"h1", "h2"} {
		if v, ok := p.firstValidText(sel); ok {
			return v, true
		}
	}
	return "", false
}

// nameFromLabel looks for elements explicitly marked as the team name
func nameFromLabel(p *page) (string, bool) {
	for _, sel := range teamNameSelectors {
		if v, ok := p.firstValidText(sel); ok {
			return v, true
		}
	}
	return "", false
}

// nameFromSlug derives a name from the /equipa/<slug> part of the URL
func nameFromSlug(p *page) (string, bool) {
	name := titleCase(club.Slug(p.url))
	if name == "" || !p.validName(name) {
		return "", false
	}
	return name, true
}

func (p *page) firstValidText(selector string) (string, bool) {
	var found string
	p.doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := cleanText(sel.Text())
		if p.validName(text) {
			found = text
			return false
		}
		return true
	})
	return found, found != ""
}
