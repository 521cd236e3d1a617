// Package club provides the club record type and identifier derivation.
//
// A club is identified by a canonical string derived from its catalogue URL.
// Numeric catalogue IDs are preferred; slug-only URLs map to "team_<slug>" and
// anything else falls back to a SHA1 hash of the URL. The hash fallback means
// two different URLs for the same club are not deduplicated.
package club
