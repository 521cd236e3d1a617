package club

import (
	"crypto/sha1"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

var (
	// /equipa/benfica/22, /equipa/benfica/22/plantel
	teamSlugIDPattern = regexp.MustCompile(`/equipa/([^/?#]+)/(\d+)(?:/|$)`)
	// /equipa/psv
	teamSlugPattern = regexp.MustCompile(`/equipa/([^/?#]+)/?$`)
	// .../2178
	trailingDigitsPattern = regexp.MustCompile(`/(\d+)/?$`)
	digitsPattern         = regexp.MustCompile(`^\d+$`)
)

// idEndpoints are the catalogue scripts that take a numeric club id query
var idEndpoints = map[string]bool{
	"team.php":   true,
	"equipa.php": true,
}

// ExtractID derives the canonical club identifier from a catalogue URL.
// Rules are tried in order and the first match wins:
//
//  1. /equipa/<slug>/<digits>  -> digits
//  2. <endpoint>?id=<digits>   -> digits (team.php, equipa.php)
//  3. trailing /<digits>       -> digits
//  4. /equipa/<slug>           -> "team_" + slug
//
// It returns false when no rule matches.
func ExtractID(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}
	p := u.EscapedPath()

	if m := teamSlugIDPattern.FindStringSubmatch(p); m != nil {
		return m[2], true
	}

	if idEndpoints[strings.ToLower(path.Base(p))] {
		if id := u.Query().Get("id"); digitsPattern.MatchString(id) {
			return id, true
		}
	}

	if m := trailingDigitsPattern.FindStringSubmatch(p); m != nil {
		return m[1], true
	}

	if m := teamSlugPattern.FindStringSubmatch(p); m != nil {
		slug, err := url.PathUnescape(m[1])
		if err != nil {
			slug = m[1]
		}
		return "team_" + strings.ToLower(slug), true
	}

	return "", false
}

// IDFor returns ExtractID's result or, when no rule matches, a stable hash
// of the URL. Hashed identifiers do not deduplicate different URLs of the
// same club.
func IDFor(rawURL string) string {
	if id, ok := ExtractID(rawURL); ok {
		return id
	}
	return HashID(rawURL)
}

// HashID creates a deterministic identifier from a URL
func HashID(rawURL string) string {
	h := sha1.New()
	h.Write([]byte(strings.TrimSpace(rawURL)))
	return fmt.Sprintf("url_%x", h.Sum(nil))
}

// Slug returns the slug segment of a /equipa/<slug> URL, if any
func Slug(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	p := u.EscapedPath()
	var raw string
	if m := teamSlugIDPattern.FindStringSubmatch(p); m != nil {
		raw = m[1]
	} else if m := teamSlugPattern.FindStringSubmatch(p); m != nil {
		raw = m[1]
	}
	if raw == "" {
		return ""
	}
	slug, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return slug
}
