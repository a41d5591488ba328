package models

import (
	"fmt"
	"time"
)

// RecurrencePattern identifies how a series repeats.
type RecurrencePattern string

const (
	PatternDaily     RecurrencePattern = "daily"
	PatternWeekly    RecurrencePattern = "weekly"
	PatternMonthly   RecurrencePattern = "monthly"
	PatternQuarterly RecurrencePattern = "quarterly"
	PatternYearly    RecurrencePattern = "yearly"
	PatternCustom    RecurrencePattern = "custom"
)

// Valid reports whether p is a known recurrence pattern.
func (p RecurrencePattern) Valid() bool {
	switch p {
	case PatternDaily, PatternWeekly, PatternMonthly, PatternQuarterly, PatternYearly, PatternCustom:
		return true
	}
	return false
}

const (
	minDayOfWeek  = 0
	maxDayOfWeek  = 6
	minDayOfMonth = 1
	maxDayOfMonth = 31
)

// Series represents a recurring job series definition.
// DayOfWeek is meaningful only for weekly series, DayOfMonth only for
// monthly series; the remaining defaults seed Jobs created from its
// instances.
type Series struct {
	ID                     string            `json:"id" db:"id"`
	Name                   string            `json:"name" db:"name"`
	ClientID               string            `json:"client_id" db:"client_id"`
	PropertyID             *string           `json:"property_id,omitempty" db:"property_id"`
	Pattern                RecurrencePattern `json:"pattern" db:"pattern"`
	Interval               int               `json:"interval" db:"recurrence_interval"`
	DayOfWeek              *int              `json:"day_of_week,omitempty" db:"day_of_week"`
	DayOfMonth             *int              `json:"day_of_month,omitempty" db:"day_of_month"`
	StartDate              time.Time         `json:"start_date" db:"start_date"`
	EndDate                *time.Time        `json:"end_date,omitempty" db:"end_date"`
	DefaultCrewID          *string           `json:"default_crew_id,omitempty" db:"default_crew_id"`
	JobTemplateID          *string           `json:"job_template_id,omitempty" db:"job_template_id"`
	EstimatedDurationHours float64           `json:"estimated_duration_hours" db:"estimated_duration_hours"`
	ServiceType            *string           `json:"service_type,omitempty" db:"service_type"`
	Notes                  *string           `json:"notes,omitempty" db:"notes"`
	Description            *string           `json:"description,omitempty" db:"description"`
	IsActive               bool              `json:"is_active" db:"is_active"`
	CreatedAt              time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time         `json:"updated_at" db:"updated_at"`
}

// Validate checks internal consistency of the series configuration.
// Pattern-specific anchor fields must be present and in range for their
// pattern, the interval must be at least 1, and the end date (when set)
// must not precede the start date.
func (s *Series) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidSeries)
	}
	if s.ClientID == "" {
		return fmt.Errorf("%w: client_id is required", ErrInvalidSeries)
	}
	if !s.Pattern.Valid() {
		return fmt.Errorf("%w: unknown pattern %q", ErrInvalidSeries, s.Pattern)
	}
	if s.Interval < 1 {
		return fmt.Errorf("%w: interval must be at least 1, got %d", ErrInvalidSeries, s.Interval)
	}
	if s.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", ErrInvalidSeries)
	}
	if s.EndDate != nil && s.EndDate.Before(s.StartDate) {
		return fmt.Errorf("%w: end_date precedes start_date", ErrInvalidSeries)
	}

	switch s.Pattern {
	case PatternWeekly:
		if s.DayOfWeek == nil {
			return fmt.Errorf("%w: weekly series requires day_of_week", ErrInvalidSeries)
		}
		if *s.DayOfWeek < minDayOfWeek || *s.DayOfWeek > maxDayOfWeek {
			return fmt.Errorf("%w: day_of_week must be between %d and %d, got %d",
				ErrInvalidSeries, minDayOfWeek, maxDayOfWeek, *s.DayOfWeek)
		}
	case PatternMonthly:
		if s.DayOfMonth == nil {
			return fmt.Errorf("%w: monthly series requires day_of_month", ErrInvalidSeries)
		}
		if *s.DayOfMonth < minDayOfMonth || *s.DayOfMonth > maxDayOfMonth {
			return fmt.Errorf("%w: day_of_month must be between %d and %d, got %d",
				ErrInvalidSeries, minDayOfMonth, maxDayOfMonth, *s.DayOfMonth)
		}
	case PatternDaily, PatternQuarterly, PatternYearly, PatternCustom:
		// Anchored on start_date alone.
	}

	return nil
}
