// Package recurrence implements pure date generation for recurring job
// series. Rules are pure values: they perform no I/O and never consult
// the clock, so the same rule and window always produce the same dates.
package recurrence

import (
	"fmt"
	"time"

	"github.com/tracklawn/scheduler/internal/models"
)

const (
	daysPerWeek      = 7
	monthsPerQuarter = 3
)

// Rule produces the occurrence dates of a series.
type Rule interface {
	// Occurrences returns the ordered, duplicate-free dates that fall
	// within the closed window [from, to], intersected with the rule's
	// own validity window [start, end]. Dates are UTC midnights.
	Occurrences(from, to time.Time) []time.Time
}

// Daily repeats every Interval days from Start.
type Daily struct {
	Start    time.Time
	End      *time.Time
	Interval int
}

// Weekly repeats on DayOfWeek every Interval weeks. The first occurrence
// is the first DayOfWeek on or after Start.
type Weekly struct {
	Start     time.Time
	End       *time.Time
	Interval  int
	DayOfWeek time.Weekday
}

// Monthly repeats on DayOfMonth every Interval months starting from
// Start's month. Days past the end of a month clamp to its last day.
type Monthly struct {
	Start      time.Time
	End        *time.Time
	Interval   int
	DayOfMonth int
}

// Quarterly repeats on Start's day-of-month every 3×Interval months,
// with the same end-of-month clamping as Monthly.
type Quarterly struct {
	Start    time.Time
	End      *time.Time
	Interval int
}

// Yearly repeats on Start's month and day every Interval years.
// Feb 29 clamps to Feb 28 in non-leap years.
type Yearly struct {
	Start    time.Time
	End      *time.Time
	Interval int
}

// Custom series have no automatic generation rule; their instances are
// populated externally.
type Custom struct{}

// RuleFor builds the Rule for a stored series. It validates the series
// first, so an invalid pattern/anchor combination can never become a rule.
func RuleFor(s *models.Series) (Rule, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	start := DateOf(s.StartDate)
	var end *time.Time
	if s.EndDate != nil {
		e := DateOf(*s.EndDate)
		end = &e
	}

	switch s.Pattern {
	case models.PatternDaily:
		return Daily{Start: start, End: end, Interval: s.Interval}, nil
	case models.PatternWeekly:
		return Weekly{Start: start, End: end, Interval: s.Interval, DayOfWeek: time.Weekday(*s.DayOfWeek)}, nil
	case models.PatternMonthly:
		return Monthly{Start: start, End: end, Interval: s.Interval, DayOfMonth: *s.DayOfMonth}, nil
	case models.PatternQuarterly:
		return Quarterly{Start: start, End: end, Interval: s.Interval}, nil
	case models.PatternYearly:
		return Yearly{Start: start, End: end, Interval: s.Interval}, nil
	case models.PatternCustom:
		return Custom{}, nil
	}
	return nil, fmt.Errorf("%w: unknown pattern %q", models.ErrInvalidSeries, s.Pattern)
}

// DateOf truncates t to a UTC midnight. All scheduled dates are stored
// and compared in this form.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// clamp intersects [from, to] with [start, end]. ok is false when the
// resulting window is empty.
func clamp(start time.Time, end *time.Time, from, to time.Time) (lo, hi time.Time, ok bool) {
	lo, hi = DateOf(from), DateOf(to)
	if start.After(lo) {
		lo = start
	}
	if end != nil && end.Before(hi) {
		hi = *end
	}
	return lo, hi, !lo.After(hi)
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func (r Daily) Occurrences(from, to time.Time) []time.Time {
	lo, hi, ok := clamp(r.Start, r.End, from, to)
	if !ok {
		return nil
	}

	// Jump to the first step on or after lo instead of walking from Start.
	k := daysBetween(r.Start, lo) / r.Interval
	d := r.Start.AddDate(0, 0, k*r.Interval)
	if d.Before(lo) {
		d = d.AddDate(0, 0, r.Interval)
	}

	var dates []time.Time
	for !d.After(hi) {
		dates = append(dates, d)
		d = d.AddDate(0, 0, r.Interval)
	}
	return dates
}

func (r Weekly) Occurrences(from, to time.Time) []time.Time {
	lo, hi, ok := clamp(r.Start, r.End, from, to)
	if !ok {
		return nil
	}

	// Anchor on the first DayOfWeek on or after Start.
	anchor := r.Start
	offset := (int(r.DayOfWeek) - int(anchor.Weekday()) + daysPerWeek) % daysPerWeek
	anchor = anchor.AddDate(0, 0, offset)

	step := r.Interval * daysPerWeek
	d := anchor
	if lo.After(anchor) {
		k := daysBetween(anchor, lo) / step
		d = anchor.AddDate(0, 0, k*step)
		if d.Before(lo) {
			d = d.AddDate(0, 0, step)
		}
	}

	var dates []time.Time
	for !d.After(hi) {
		dates = append(dates, d)
		d = d.AddDate(0, 0, step)
	}
	return dates
}

func (r Monthly) Occurrences(from, to time.Time) []time.Time {
	return monthWalk(r.Start, r.End, r.Interval, r.DayOfMonth, from, to)
}

func (r Quarterly) Occurrences(from, to time.Time) []time.Time {
	return monthWalk(r.Start, r.End, r.Interval*monthsPerQuarter, r.Start.Day(), from, to)
}

// monthWalk steps through months from start's month in stepMonths
// increments, yielding dayOfMonth clamped to each month's length.
// Months are tracked as integers so that clamped dates never feed back
// into the arithmetic (AddDate would normalize Jan 31 + 1 month into
// March).
func monthWalk(start time.Time, end *time.Time, stepMonths, dayOfMonth int, from, to time.Time) []time.Time {
	lo, hi, ok := clamp(start, end, from, to)
	if !ok {
		return nil
	}

	startMonth := monthIndex(start.Year(), start.Month())
	loMonth := monthIndex(lo.Year(), lo.Month())

	// First step whose month could reach lo; back up one step because a
	// clamped day inside lo's month may still precede lo.
	k := 0
	if loMonth > startMonth {
		k = (loMonth - startMonth) / stepMonths
	}
	if k > 0 {
		k--
	}

	var dates []time.Time
	for {
		y, m := monthOf(startMonth + k*stepMonths)
		d := clampDay(dayOfMonth, y, m)
		date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		if date.After(hi) {
			return dates
		}
		if !date.Before(lo) {
			dates = append(dates, date)
		}
		k++
	}
}

func (r Yearly) Occurrences(from, to time.Time) []time.Time {
	lo, hi, ok := clamp(r.Start, r.End, from, to)
	if !ok {
		return nil
	}

	k := 0
	if yd := lo.Year() - r.Start.Year(); yd > 0 {
		k = yd / r.Interval
	}
	if k > 0 {
		k--
	}

	var dates []time.Time
	for {
		y := r.Start.Year() + k*r.Interval
		d := clampDay(r.Start.Day(), y, r.Start.Month())
		date := time.Date(y, r.Start.Month(), d, 0, 0, 0, 0, time.UTC)
		if date.After(hi) {
			return dates
		}
		if !date.Before(lo) {
			dates = append(dates, date)
		}
		k++
	}
}

func (Custom) Occurrences(_, _ time.Time) []time.Time {
	return nil
}

// monthIndex flattens a year/month pair into a single month count.
func monthIndex(year int, month time.Month) int {
	return year*12 + int(month) - 1
}

func monthOf(index int) (int, time.Month) {
	return index / 12, time.Month(index%12 + 1)
}

// clampDay bounds day to the number of days in the given month.
func clampDay(day, year int, month time.Month) int {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		return last
	}
	return day
}
