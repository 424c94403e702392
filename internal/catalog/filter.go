// Package catalog holds the event collection shown to the user and the filter
// state applied to it.
//
// [ApplyFilters] is pure. [Catalog] is the stateful holder used by the TUI and
// the local server; a failed refresh never replaces its collection.
package catalog

import (
	"strings"

	"github.com/desertthunder/spotlite/internal/models"
)

// All is the filter value that matches every genre or location.
const All = "All"

// FilterState is the search term plus the genre and location selections.
//
// Conditions combine conjunctively. An empty Genre or Location is treated as [All].
type FilterState struct {
	SearchTerm string `json:"searchTerm"`
	Genre      string `json:"genre"`
	Location   string `json:"location"`
}

// DefaultFilter matches every event.
func DefaultFilter() FilterState {
	return FilterState{Genre: All, Location: All}
}

// IsDefault reports whether f matches every event.
func (f FilterState) IsDefault() bool {
	return f.SearchTerm == "" && isAll(f.Genre) && isAll(f.Location)
}

// Matches reports whether e passes every condition of f.
//
// The search term is a case-insensitive substring of the name or the location.
// Genre and location compare exactly.
func (f FilterState) Matches(e models.Event) bool {
	if f.SearchTerm != "" {
		term := strings.ToLower(f.SearchTerm)
		if !strings.Contains(strings.ToLower(e.Name), term) &&
			!strings.Contains(strings.ToLower(e.Location), term) {
			return false
		}
	}
	if !isAll(f.Genre) && string(e.Category) != f.Genre {
		return false
	}
	if !isAll(f.Location) && e.Location != f.Location {
		return false
	}
	return true
}

// ApplyFilters returns the events matching f in input order.
//
// The result never aliases events' backing array.
func ApplyFilters(events models.EventCollection, f FilterState) models.EventCollection {
	out := make(models.EventCollection, 0, len(events))
	for _, e := range events {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Canonical maps value onto the option it equals case-insensitively.
//
// "all" and "" become [All]. Values not in options are returned trimmed but
// otherwise unchanged so unknown genres still filter exactly.
func Canonical(value string, options []string) string {
	value = strings.TrimSpace(value)
	if isAll(value) {
		return All
	}
	for _, opt := range options {
		if strings.EqualFold(opt, value) {
			return opt
		}
	}
	return value
}

// Cycle steps through [All] followed by options, wrapping at both ends.
// A current value not in the ring restarts from [All].
func Cycle(current string, options []string, step int) string {
	ring := append([]string{All}, options...)
	idx := 0
	for i, opt := range ring {
		if opt == current {
			idx = i
			break
		}
	}
	n := len(ring)
	return ring[((idx+step)%n+n)%n]
}

func isAll(v string) bool {
	return v == "" || strings.EqualFold(v, All)
}
