// Package calendar implements working-day arithmetic over a Monday–Friday
// week with a set of excluded holiday dates.
package calendar

import (
	"sort"
	"time"

	"github.com/alexanderramin/backplan/internal/domain"
)

// HolidaySet is a set of calendar dates. Membership is exact date equality;
// time of day and location are ignored.
type HolidaySet map[time.Time]struct{}

// NewHolidaySet builds a set from the given dates.
func NewHolidaySet(dates ...time.Time) HolidaySet {
	h := make(HolidaySet, len(dates))
	for _, d := range dates {
		h.Add(d)
	}
	return h
}

// Add inserts d into the set.
func (h HolidaySet) Add(d time.Time) {
	h[domain.DateOf(d)] = struct{}{}
}

// Contains reports whether d is a holiday. A nil set contains nothing.
func (h HolidaySet) Contains(d time.Time) bool {
	if h == nil {
		return false
	}
	_, ok := h[domain.DateOf(d)]
	return ok
}

// Merge adds every date of other into h.
func (h HolidaySet) Merge(other HolidaySet) {
	for d := range other {
		h[d] = struct{}{}
	}
}

// Sorted returns the holidays in ascending order.
func (h HolidaySet) Sorted() []time.Time {
	out := make([]time.Time, 0, len(h))
	for d := range h {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
