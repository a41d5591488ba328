package models

import "errors"

// Common errors
var (
	// ErrNotFound is returned when a series or instance is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidSeries is returned when a series configuration fails validation
	ErrInvalidSeries = errors.New("invalid series configuration")

	// ErrSeriesInactive is returned when generation is requested for an archived series
	ErrSeriesInactive = errors.New("series is not active")

	// ErrInvalidHorizon is returned when a generation horizon is zero or negative
	ErrInvalidHorizon = errors.New("horizon days must be positive")

	// ErrInvalidTransition is returned when an instance status change is not
	// permitted from the instance's current status
	ErrInvalidTransition = errors.New("invalid instance status transition")

	// ErrInvalidStatus is returned when a request carries an unknown status value
	ErrInvalidStatus = errors.New("invalid instance status")
)
