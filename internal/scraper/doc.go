// Package scraper fetches catalogue pages over HTTP.
//
// The scraper package is the page fetch collaborator of the pipeline. It sends
// a browser-like header set, applies a request timeout, and reports non-2xx
// responses and network errors uniformly as *FetchError so callers can retry
// them. It does not parse markup; see the extract and discovery packages.
package scraper
