package models

import "time"

// JobRequest carries the fields seeded from a series and one of its
// instances when asking the job service to create a billable Job.
type JobRequest struct {
	ClientID               string    `json:"client_id"`
	PropertyID             *string   `json:"property_id,omitempty"`
	CrewID                 *string   `json:"crew_id,omitempty"`
	JobTemplateID          *string   `json:"job_template_id,omitempty"`
	ScheduledDate          time.Time `json:"scheduled_date"`
	EstimatedDurationHours float64   `json:"estimated_duration_hours"`
	ServiceType            *string   `json:"service_type,omitempty"`
	Notes                  *string   `json:"notes,omitempty"`
	Description            *string   `json:"description,omitempty"`
	SeriesID               string    `json:"series_id"`
}

// Job is the job service's record of a created Job. Only the fields the
// scheduler reads back are modelled here; the Job's own lifecycle belongs
// to the job service.
type Job struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"client_id"`
	ScheduledDate time.Time `json:"scheduled_date"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
