// Package tracker manages saved jobs — the user-curated board entries that
// live outside the discovery feed.
//
// Unlike a strict kanban state machine, the workflow status is free-form:
// the known values below are used for defaulting and board grouping only,
// and any other string is stored as given.
package tracker

import "strings"

// Known workflow statuses.
const (
	StatusSaved     = "saved"
	StatusApplied   = "applied"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusRejected  = "rejected"
)

// KnownStatuses lists the workflow states the board groups by.
var KnownStatuses = []string{StatusSaved, StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// NormalizeStatus trims the input and defaults empty to "saved". A known
// status in any letter case is stored in its canonical form so the feed
// filter and board grouping match it; anything else is stored as given.
func NormalizeStatus(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return StatusSaved
	}
	for _, known := range KnownStatuses {
		if strings.EqualFold(s, known) {
			return known
		}
	}
	return s
}

// IsSaved reports whether a status keeps the entry in the feed filter: only
// saved-status entries hide their (title, company) from discovery.
func IsSaved(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), StatusSaved)
}
