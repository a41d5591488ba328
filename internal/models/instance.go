package models

import "time"

// InstanceStatus represents the lifecycle state of a scheduled occurrence.
type InstanceStatus string

const (
	// StatusScheduled is the initial state of a generated instance.
	StatusScheduled InstanceStatus = "scheduled"
	// StatusCreated means the instance has been converted into a Job.
	// Terminal: once a Job exists the instance never changes again.
	StatusCreated InstanceStatus = "created"
	// StatusSkipped means the user skipped this occurrence.
	StatusSkipped InstanceStatus = "skipped"
	// StatusCancelled is reserved for series archival cascades.
	StatusCancelled InstanceStatus = "cancelled"
)

// Valid reports whether s is a known instance status.
func (s InstanceStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCreated, StatusSkipped, StatusCancelled:
		return true
	}
	return false
}

// Instance is one concrete calendar occurrence of a series.
// JobID is set if and only if Status is StatusCreated.
type Instance struct {
	ID            string         `json:"id" db:"id"`
	SeriesID      string         `json:"series_id" db:"series_id"`
	ScheduledDate time.Time      `json:"scheduled_date" db:"scheduled_date"`
	Status        InstanceStatus `json:"status" db:"status"`
	JobID         *string        `json:"job_id,omitempty" db:"job_id"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}
