package pipeline

import (
	"time"
)

// PageState is a step of the per-page state machine
type PageState int

const (
	StatePending PageState = iota
	StateFetching
	StateParsed
	StateFetchFailed
	StateExtracted
	StateExtractFailed
	StateGeocoded
	StateReconciled
)

var stateNames = map[PageState]string{
	StatePending:       "PENDING",
	StateFetching:      "FETCHING",
	StateParsed:        "PARSED",
	StateFetchFailed:   "FETCH_FAILED",
	StateExtracted:     "EXTRACTED",
	StateExtractFailed: "EXTRACT_FAILED",
	StateGeocoded:      "GEOCODED",
	StateReconciled:    "RECONCILED",
}

func (s PageState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText renders the state name in JSON output
func (s PageState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether no further transition follows s
func (s PageState) Terminal() bool {
	return s == StateFetchFailed || s == StateExtractFailed || s == StateReconciled
}

// Outcome of a reconciled page
type Outcome string

const (
	OutcomeAdded   Outcome = "added"
	OutcomeKnown   Outcome = "known"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// PageReport records what happened to one club page
type PageReport struct {
	URL      string        `json:"url"`
	Source   string        `json:"source"`
	ID       string        `json:"id,omitempty"`
	Name     string        `json:"club,omitempty"`
	States   []PageState   `json:"states"`
	Attempts int           `json:"attempts"`
	Located  bool          `json:"located"`
	Outcome  Outcome       `json:"outcome"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

func newReport(url, source string) *PageReport {
	return &PageReport{URL: url, Source: source, States: []PageState{StatePending}}
}

func (r *PageReport) advance(s PageState) {
	r.States = append(r.States, s)
}

func (r *PageReport) fail(s PageState, err error) {
	r.advance(s)
	r.Outcome = OutcomeFailed
	if err != nil {
		r.Error = err.Error()
	}
}

// State returns the latest state of the page
func (r *PageReport) State() PageState {
	if len(r.States) == 0 {
		return StatePending
	}
	return r.States[len(r.States)-1]
}

// Summary describes a finished run
type Summary struct {
	Discovered      int  `json:"discovered"`
	Extracted       int  `json:"extracted"`
	Saved           int  `json:"saved"`
	Persisted       int  `json:"persisted"`
	Added           int  `json:"added"`
	FetchFailures   int  `json:"fetch_failures"`
	ExtractFailures int  `json:"extract_failures"`
	GeocodeMisses   int  `json:"geocode_misses"`
	ListingFailures int  `json:"listing_failures"`
	Interrupted     bool `json:"interrupted"`

	Pages []*PageReport `json:"pages"`
	// Failed lists the URLs of pages that ended in a failure state
	Failed []string `json:"failed,omitempty"`
}

func (s *Summary) record(r *PageReport) {
	s.Pages = append(s.Pages, r)
	switch r.State() {
	case StateFetchFailed:
		s.FetchFailures++
		s.Failed = append(s.Failed, r.URL)
	case StateExtractFailed:
		s.ExtractFailures++
		s.Failed = append(s.Failed, r.URL)
	}
}
