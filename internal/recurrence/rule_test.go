package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklawn/scheduler/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestDaily_Occurrences(t *testing.T) {
	tests := []struct {
		name string
		rule Daily
		from time.Time
		to   time.Time
		want []time.Time
	}{
		{
			name: "every day within window",
			rule: Daily{Start: date(2024, 1, 1), Interval: 1},
			from: date(2024, 1, 1),
			to:   date(2024, 1, 5),
			want: []time.Time{
				date(2024, 1, 1), date(2024, 1, 2), date(2024, 1, 3),
				date(2024, 1, 4), date(2024, 1, 5),
			},
		},
		{
			name: "interval of three days",
			rule: Daily{Start: date(2024, 1, 1), Interval: 3},
			from: date(2024, 1, 1),
			to:   date(2024, 1, 10),
			want: []time.Time{
				date(2024, 1, 1), date(2024, 1, 4), date(2024, 1, 7), date(2024, 1, 10),
			},
		},
		{
			name: "window starting mid-sequence stays aligned to start",
			rule: Daily{Start: date(2024, 1, 1), Interval: 3},
			from: date(2024, 1, 5),
			to:   date(2024, 1, 12),
			want: []time.Time{date(2024, 1, 7), date(2024, 1, 10)},
		},
		{
			name: "window before start is empty",
			rule: Daily{Start: date(2024, 6, 1), Interval: 1},
			from: date(2024, 1, 1),
			to:   date(2024, 1, 31),
			want: nil,
		},
		{
			name: "end date truncates the window",
			rule: Daily{Start: date(2024, 1, 1), End: datePtr(2024, 1, 3), Interval: 1},
			from: date(2024, 1, 1),
			to:   date(2024, 1, 10),
			want: []time.Time{date(2024, 1, 1), date(2024, 1, 2), date(2024, 1, 3)},
		},
		{
			name: "start years in the past",
			rule: Daily{Start: date(2019, 3, 10), Interval: 7},
			from: date(2024, 1, 1),
			to:   date(2024, 1, 14),
			want: []time.Time{date(2024, 1, 7), date(2024, 1, 14)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Occurrences(tt.from, tt.to))
		})
	}
}

func TestWeekly_Occurrences(t *testing.T) {
	tests := []struct {
		name string
		rule Weekly
		from time.Time
		to   time.Time
		want []time.Time
	}{
		{
			name: "every second monday from a monday start",
			rule: Weekly{Start: date(2024, 1, 1), Interval: 2, DayOfWeek: time.Monday},
			from: date(2024, 1, 1),
			to:   date(2024, 2, 15),
			want: []time.Time{date(2024, 1, 1), date(2024, 1, 15), date(2024, 1, 29), date(2024, 2, 12)},
		},
		{
			name: "anchor rolls forward to first matching weekday",
			// 2024-01-02 is a Tuesday; first Friday on or after is 2024-01-05.
			rule: Weekly{Start: date(2024, 1, 2), Interval: 1, DayOfWeek: time.Friday},
			from: date(2024, 1, 1),
			to:   date(2024, 1, 20),
			want: []time.Time{date(2024, 1, 5), date(2024, 1, 12), date(2024, 1, 19)},
		},
		{
			name: "window starting mid-sequence keeps the anchor cadence",
			rule: Weekly{Start: date(2024, 1, 1), Interval: 2, DayOfWeek: time.Monday},
			from: date(2024, 1, 20),
			to:   date(2024, 2, 29),
			want: []time.Time{date(2024, 1, 29), date(2024, 2, 12), date(2024, 2, 26)},
		},
		{
			name: "end date excludes later occurrences",
			rule: Weekly{Start: date(2024, 1, 1), End: datePtr(2024, 1, 16), Interval: 1, DayOfWeek: time.Monday},
			from: date(2024, 1, 1),
			to:   date(2024, 3, 1),
			want: []time.Time{date(2024, 1, 1), date(2024, 1, 8), date(2024, 1, 15)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Occurrences(tt.from, tt.to))
		})
	}
}

func TestMonthly_Occurrences(t *testing.T) {
	tests := []struct {
		name string
		rule Monthly
		from time.Time
		to   time.Time
		want []time.Time
	}{
		{
			name: "day 31 clamps to leap-year february",
			rule: Monthly{Start: date(2024, 1, 31), Interval: 1, DayOfMonth: 31},
			from: date(2024, 1, 1),
			to:   date(2024, 4, 1),
			want: []time.Time{date(2024, 1, 31), date(2024, 2, 29), date(2024, 3, 31)},
		},
		{
			name: "day 31 clamps to 28 in non-leap february",
			rule: Monthly{Start: date(2023, 1, 31), Interval: 1, DayOfMonth: 31},
			from: date(2023, 2, 1),
			to:   date(2023, 3, 1),
			want: []time.Time{date(2023, 2, 28)},
		},
		{
			name: "two month interval",
			rule: Monthly{Start: date(2024, 1, 15), Interval: 2, DayOfMonth: 15},
			from: date(2024, 1, 1),
			to:   date(2024, 7, 1),
			want: []time.Time{date(2024, 1, 15), date(2024, 3, 15), date(2024, 5, 15)},
		},
		{
			name: "candidate in start month before start date is dropped",
			rule: Monthly{Start: date(2024, 1, 15), Interval: 1, DayOfMonth: 1},
			from: date(2024, 1, 1),
			to:   date(2024, 3, 15),
			want: []time.Time{date(2024, 2, 1), date(2024, 3, 1)},
		},
		{
			name: "window opening after a clamped date still finds it",
			rule: Monthly{Start: date(2024, 1, 31), Interval: 1, DayOfMonth: 31},
			from: date(2024, 2, 29),
			to:   date(2024, 3, 31),
			want: []time.Time{date(2024, 2, 29), date(2024, 3, 31)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Occurrences(tt.from, tt.to))
		})
	}
}

func TestQuarterly_Occurrences(t *testing.T) {
	rule := Quarterly{Start: date(2024, 1, 31), Interval: 1}

	got := rule.Occurrences(date(2024, 1, 1), date(2024, 12, 31))

	// Steps of three months anchored on the start's day-of-month, with
	// end-of-month clamping (April has 30 days).
	want := []time.Time{
		date(2024, 1, 31), date(2024, 4, 30), date(2024, 7, 31), date(2024, 10, 31),
	}
	assert.Equal(t, want, got)
}

func TestYearly_Occurrences(t *testing.T) {
	tests := []struct {
		name string
		rule Yearly
		from time.Time
		to   time.Time
		want []time.Time
	}{
		{
			name: "annual anniversary",
			rule: Yearly{Start: date(2022, 6, 15), Interval: 1},
			from: date(2022, 1, 1),
			to:   date(2024, 12, 31),
			want: []time.Time{date(2022, 6, 15), date(2023, 6, 15), date(2024, 6, 15)},
		},
		{
			name: "feb 29 clamps to feb 28 in non-leap years",
			rule: Yearly{Start: date(2024, 2, 29), Interval: 1},
			from: date(2024, 1, 1),
			to:   date(2026, 12, 31),
			want: []time.Time{date(2024, 2, 29), date(2025, 2, 28), date(2026, 2, 28)},
		},
		{
			name: "two year interval",
			rule: Yearly{Start: date(2020, 3, 1), Interval: 2},
			from: date(2023, 1, 1),
			to:   date(2027, 1, 1),
			want: []time.Time{date(2024, 3, 1), date(2026, 3, 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Occurrences(tt.from, tt.to))
		})
	}
}

func TestCustom_Occurrences(t *testing.T) {
	assert.Empty(t, Custom{}.Occurrences(date(2024, 1, 1), date(2030, 1, 1)))
}

func TestRuleFor(t *testing.T) {
	weekday := 1
	dayOfMonth := 31

	tests := []struct {
		name     string
		series   models.Series
		wantType Rule
		wantErr  bool
	}{
		{
			name: "daily",
			series: models.Series{
				Name: "s", ClientID: "c", Pattern: models.PatternDaily,
				Interval: 2, StartDate: date(2024, 1, 1),
			},
			wantType: Daily{},
		},
		{
			name: "weekly",
			series: models.Series{
				Name: "s", ClientID: "c", Pattern: models.PatternWeekly,
				Interval: 1, DayOfWeek: &weekday, StartDate: date(2024, 1, 1),
			},
			wantType: Weekly{},
		},
		{
			name: "monthly",
			series: models.Series{
				Name: "s", ClientID: "c", Pattern: models.PatternMonthly,
				Interval: 1, DayOfMonth: &dayOfMonth, StartDate: date(2024, 1, 1),
			},
			wantType: Monthly{},
		},
		{
			name: "quarterly",
			series: models.Series{
				Name: "s", ClientID: "c", Pattern: models.PatternQuarterly,
				Interval: 1, StartDate: date(2024, 1, 1),
			},
			wantType: Quarterly{},
		},
		{
			name: "yearly",
			series: models.Series{
				Name: "s", ClientID: "c", Pattern: models.PatternYearly,
				Interval: 1, StartDate: date(2024, 1, 1),
			},
			wantType: Yearly{},
		},
		{
			name: "custom",
			series: models.Series{
				Name: "s", ClientID: "c", Pattern: models.PatternCustom,
				Interval: 1, StartDate: date(2024, 1, 1),
			},
			wantType: Custom{},
		},
		{
			name: "weekly without anchor fails validation",
			series: models.Series{
				Name: "s", ClientID: "c", Pattern: models.PatternWeekly,
				Interval: 1, StartDate: date(2024, 1, 1),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := RuleFor(&tt.series)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, rule)
		})
	}
}

func TestRuleFor_NormalizesTimestamps(t *testing.T) {
	// Start dates arriving with a time-of-day component still generate
	// midnight occurrence dates.
	s := models.Series{
		Name: "s", ClientID: "c", Pattern: models.PatternDaily,
		Interval:  1,
		StartDate: time.Date(2024, 1, 1, 14, 30, 0, 0, time.UTC),
	}
	rule, err := RuleFor(&s)
	require.NoError(t, err)

	got := rule.Occurrences(date(2024, 1, 1), date(2024, 1, 2))
	assert.Equal(t, []time.Time{date(2024, 1, 1), date(2024, 1, 2)}, got)
}
