package extract

import (
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold lowercases s and strips diacritics so "Estádio" matches "estadio"
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// cleanText collapses runs of whitespace and trims the result
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// containsAny reports whether folded text contains one of the keywords
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// tokens splits folded text into alphanumeric words
func tokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// hasTokenPrefix reports whether any token starts with one of the keywords
func hasTokenPrefix(toks []string, keywords []string) bool {
	for _, tok := range toks {
		for _, k := range keywords {
			if strings.HasPrefix(tok, k) {
				return true
			}
		}
	}
	return false
}

// titleCase turns "sporting-braga" style slugs into "Sporting Braga"
func titleCase(slug string) string {
	s := strings.NewReplacer("-", " ", "_", " ", "+", " ", ".", " ").Replace(slug)
	s = cleanText(s)
	if s == "" {
		return ""
	}
	return cases.Title(language.Portuguese).String(s)
}

// resolveURL makes src absolute against the site origin. Protocol-relative
// URLs take the origin's scheme. Inline data URLs are rejected.
func resolveURL(origin *url.URL, src string) string {
	src = strings.TrimSpace(src)
	if src == "" || strings.HasPrefix(strings.ToLower(src), "data:") {
		return ""
	}
	if strings.HasPrefix(src, "//") {
		return origin.Scheme + ":" + src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	return origin.ResolveReference(ref).String()
}
