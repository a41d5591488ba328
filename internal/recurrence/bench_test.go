package recurrence

import (
	"testing"
	"time"

	"github.com/tracklawn/scheduler/internal/models"
)

// BenchmarkOccurrences_OldSeries exercises the jump-ahead path: a weekly
// series that started years before the requested window.
func BenchmarkOccurrences_OldSeries(b *testing.B) {
	dow := 1
	series := &models.Series{
		Name:      "Weekly mow",
		ClientID:  "client-1",
		Pattern:   models.PatternWeekly,
		Interval:  2,
		DayOfWeek: &dow,
		StartDate: time.Date(2015, time.March, 2, 0, 0, 0, 0, time.UTC),
	}

	rule, err := RuleFor(series)
	if err != nil {
		b.Fatal(err)
	}

	from := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 90)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if dates := rule.Occurrences(from, to); len(dates) == 0 {
			b.Fatal("expected occurrences in window")
		}
	}
}

// BenchmarkOccurrences_MonthlyClamped walks a decade of clamped month-end
// dates.
func BenchmarkOccurrences_MonthlyClamped(b *testing.B) {
	dom := 31
	series := &models.Series{
		Name:       "Month-end cleanup",
		ClientID:   "client-1",
		Pattern:    models.PatternMonthly,
		Interval:   1,
		DayOfMonth: &dom,
		StartDate:  time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
	}

	rule, err := RuleFor(series)
	if err != nil {
		b.Fatal(err)
	}

	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(10, 0, 0)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if dates := rule.Occurrences(from, to); len(dates) < 100 {
			b.Fatal("expected a decade of occurrences")
		}
	}
}
