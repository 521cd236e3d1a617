// Package pipeline orchestrates a clubmap run.
//
// For every source (a paginated listing page, or a fixed list of club URLs)
// the pipeline fetches and discovers club links, then walks each club page
// through a small state machine:
//
//	PENDING -> FETCHING -> PARSED | FETCH_FAILED
//	PARSED -> EXTRACTED | EXTRACT_FAILED
//	EXTRACTED -> GEOCODED -> RECONCILED
//
// FETCH_FAILED and EXTRACT_FAILED end the page without failing the run.
// Reconciled records are merged into the run's registry, which is written
// through the Store after each source and once more when the run ends,
// including when it is interrupted. Only a Store failure or cancellation
// stops a run early.
//
// Everything a run accumulates lives in values owned by a single Run call;
// nothing carries over between runs except what the Store persists.
package pipeline
