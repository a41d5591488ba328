// Package events publishes schedule lifecycle events to Redis Streams so
// downstream services (crews, notifications, billing) can react to series
// and instance changes.
package events

import (
	"time"

	"github.com/google/uuid"
)

// StreamName is the Redis stream for schedule events.
const StreamName = "schedule-events"

// EventType represents the type of schedule event.
type EventType string

const (
	// SeriesCreated indicates a new job series was created.
	SeriesCreated EventType = "SERIES_CREATED"
	// SeriesArchived indicates a series was archived.
	SeriesArchived EventType = "SERIES_ARCHIVED"
	// InstancesGenerated indicates new instances were materialized for a series.
	InstancesGenerated EventType = "INSTANCES_GENERATED"
	// InstanceSkipped indicates a scheduled instance was skipped.
	InstanceSkipped EventType = "INSTANCE_SKIPPED"
	// InstanceReactivated indicates a skipped instance returned to scheduled.
	InstanceReactivated EventType = "INSTANCE_REACTIVATED"
	// InstanceConverted indicates an instance was converted into a job.
	InstanceConverted EventType = "INSTANCE_CONVERTED"
)

// ScheduleEvent is the envelope for all schedule-related events.
type ScheduleEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	EventType EventType `json:"event_type"`
	SeriesID  string    `json:"series_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// SeriesCreatedPayload contains data for SERIES_CREATED events.
type SeriesCreatedPayload struct {
	Name     string `json:"name"`
	ClientID string `json:"client_id"`
	Pattern  string `json:"pattern"`
	Interval int    `json:"interval"`
}

// InstancesGeneratedPayload contains data for INSTANCES_GENERATED events.
type InstancesGeneratedPayload struct {
	HorizonDays int `json:"horizon_days"`
	Count       int `json:"count"`
}

// InstanceStatusPayload contains data for INSTANCE_SKIPPED and
// INSTANCE_REACTIVATED events.
type InstanceStatusPayload struct {
	InstanceID    string    `json:"instance_id"`
	ScheduledDate time.Time `json:"scheduled_date"`
}

// InstanceConvertedPayload contains data for INSTANCE_CONVERTED events.
type InstanceConvertedPayload struct {
	InstanceID    string    `json:"instance_id"`
	JobID         string    `json:"job_id"`
	ScheduledDate time.Time `json:"scheduled_date"`
}
