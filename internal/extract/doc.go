// Package extract pulls club fields out of a parsed catalogue page.
//
// Every field is found by an ordered list of strategies. Each strategy looks
// at the page one way (title, headings, tables, image attributes) and either
// returns a candidate or reports that it found nothing; the first strategy
// that succeeds wins. Club names are validated against the site's brand and
// navigation vocabulary, and a page without any valid name yields ErrNoName
// instead of a record.
package extract
