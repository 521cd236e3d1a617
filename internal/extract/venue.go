package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// validVenue applies the navigation blacklist and length checks
func (p *page) validVenue(s string) bool {
	n := utf8.RuneCountInString(s)
	if n < venueMinLen || n > venueMaxLen {
		return false
	}
	return !p.blacklisted(s)
}

// venueFromLink takes the text of the first valid link to a stadium page
func venueFromLink(p *page) (string, bool) {
	var found string
	p.doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if !containsAny(strings.ToLower(href), venueLinkMarkers) {
			return true
		}
		text := cleanText(sel.Text())
		if text == "" {
			text = cleanText(sel.AttrOr("title", ""))
		}
		if p.validVenue(text) {
			found = text
			return false
		}
		return true
	})
	return found, found != ""
}

// venueFromTable takes the value of an info-table row labelled as the
// stadium (Portuguese or English)
func venueFromTable(p *page) (string, bool) {
	return p.rowValue(venueLabels, p.validVenue)
}

// addressFromTable takes the value of the first row labelled as a location,
// as written
func addressFromTable(p *page) (string, bool) {
	return p.rowValue(locationLabels, func(v string) bool { return v != "" })
}
