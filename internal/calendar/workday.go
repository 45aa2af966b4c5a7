package calendar

import (
	"time"

	"github.com/alexanderramin/backplan/internal/domain"
)

// IsWorkday reports whether d falls on Monday–Friday and is not a holiday.
func IsWorkday(d time.Time, holidays HolidaySet) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !holidays.Contains(d)
}

// StepBackward returns the date n workdays before from.
//
// For n == 0 it returns the nearest workday on or before from. For n > 0 it
// walks back one calendar day at a time from the raw from date, counting only
// workdays, and returns the date on which the count reaches n. Negative n is
// treated as zero.
func StepBackward(from time.Time, n int, holidays HolidaySet) time.Time {
	d := domain.DateOf(from)
	if n <= 0 {
		for !IsWorkday(d, holidays) {
			d = d.AddDate(0, 0, -1)
		}
		return d
	}
	for steps := 0; steps < n; {
		d = d.AddDate(0, 0, -1)
		if IsWorkday(d, holidays) {
			steps++
		}
	}
	return d
}

// StepForward returns the date n workdays after from, walking forward the
// same way StepBackward walks back. For n <= 0 it returns from unchanged.
func StepForward(from time.Time, n int, holidays HolidaySet) time.Time {
	d := domain.DateOf(from)
	for steps := 0; steps < n; {
		d = d.AddDate(0, 0, 1)
		if IsWorkday(d, holidays) {
			steps++
		}
	}
	return d
}

// WorkdaysBetween counts the workdays in the inclusive range [from, to].
// It returns 0 when to is before from.
func WorkdaysBetween(from, to time.Time, holidays HolidaySet) int {
	start, end := domain.DateOf(from), domain.DateOf(to)
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWorkday(d, holidays) {
			count++
		}
	}
	return count
}

// HolidaysBetween returns the holidays inside the inclusive range [from, to],
// sorted ascending.
func HolidaysBetween(from, to time.Time, holidays HolidaySet) []time.Time {
	start, end := domain.DateOf(from), domain.DateOf(to)
	var out []time.Time
	for _, d := range holidays.Sorted() {
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, d)
	}
	return out
}
