package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/clubmap/internal/pipeline"
)

// SortOrder represents the available page report orderings
type SortOrder string

const (
	SortByRun   SortOrder = "run"
	SortByState SortOrder = "state"
	SortByClub  SortOrder = "club"
)

func (o SortOrder) valid() bool {
	return o == SortByRun || o == SortByState || o == SortByClub
}

// sortReports orders page reports in place. Run order is left untouched;
// the other orders are stable so ties keep run order.
func sortReports(reports []*pipeline.PageReport, order SortOrder) {
	switch order {
	case SortByState:
		sort.SliceStable(reports, func(i, j int) bool {
			return stateRank(reports[i].State()) < stateRank(reports[j].State())
		})
	case SortByClub:
		sort.SliceStable(reports, func(i, j int) bool {
			a, b := strings.ToLower(reports[i].Name), strings.ToLower(reports[j].Name)
			// Unnamed pages last
			if (a == "") != (b == "") {
				return a != ""
			}
			return a < b
		})
	}
}

// stateRank puts failures first so they are read before successes
func stateRank(s pipeline.PageState) int {
	switch s {
	case pipeline.StateFetchFailed:
		return 0
	case pipeline.StateExtractFailed:
		return 1
	case pipeline.StateReconciled:
		return 3
	default:
		return 2
	}
}
