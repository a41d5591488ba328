// Package repository provides PostgreSQL persistence for job series and
// their generated instances.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tracklawn/scheduler/internal/models"
)

// seriesSelectList is the column list for SELECT on job_series (single
// source for schema changes).
const seriesSelectList = `id, name, client_id, property_id, pattern, recurrence_interval,
			day_of_week, day_of_month, start_date, end_date,
			default_crew_id, job_template_id, estimated_duration_hours,
			service_type, notes, description, is_active, created_at, updated_at`

// SeriesRepository manages recurring job series rows.
type SeriesRepository struct {
	db *sql.DB
}

// NewSeriesRepository creates a new repository.
func NewSeriesRepository(db *sql.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

// Create inserts a new series. The series is validated and assigned a
// fresh id; new series are always active.
func (r *SeriesRepository) Create(ctx context.Context, series *models.Series) error {
	if err := series.Validate(); err != nil {
		return err
	}

	series.ID = uuid.New().String()
	series.IsActive = true
	series.CreatedAt = time.Now().UTC()
	series.UpdatedAt = series.CreatedAt

	query := `
		INSERT INTO job_series (
			id, name, client_id, property_id, pattern, recurrence_interval,
			day_of_week, day_of_month, start_date, end_date,
			default_crew_id, job_template_id, estimated_duration_hours,
			service_type, notes, description, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		series.ID,
		series.Name,
		series.ClientID,
		series.PropertyID,
		series.Pattern,
		series.Interval,
		series.DayOfWeek,
		series.DayOfMonth,
		series.StartDate,
		series.EndDate,
		series.DefaultCrewID,
		series.JobTemplateID,
		series.EstimatedDurationHours,
		series.ServiceType,
		series.Notes,
		series.Description,
		series.IsActive,
		series.CreatedAt,
		series.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert series: %w", err)
	}

	return nil
}

// GetByID returns a single series or models.ErrNotFound.
func (r *SeriesRepository) GetByID(ctx context.Context, id string) (*models.Series, error) {
	query := `SELECT ` + seriesSelectList + ` FROM job_series WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	series, err := scanSeries(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query series: %w", err)
	}
	return series, nil
}

// List returns all series ordered by name.
func (r *SeriesRepository) List(ctx context.Context) ([]models.Series, error) {
	query := `SELECT ` + seriesSelectList + ` FROM job_series ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query series: %w", err)
	}
	defer rows.Close()

	result := make([]models.Series, 0)
	for rows.Next() {
		series, scanErr := scanSeries(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan series: %w", scanErr)
		}
		result = append(result, *series)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate series: %w", err)
	}
	return result, nil
}

// ListActive returns active series only, for horizon regeneration.
func (r *SeriesRepository) ListActive(ctx context.Context) ([]models.Series, error) {
	query := `SELECT ` + seriesSelectList + ` FROM job_series WHERE is_active = true ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query active series: %w", err)
	}
	defer rows.Close()

	result := make([]models.Series, 0)
	for rows.Next() {
		series, scanErr := scanSeries(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan series: %w", scanErr)
		}
		result = append(result, *series)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate active series: %w", err)
	}
	return result, nil
}

// Archive soft-deletes a series. Existing instances are left untouched.
func (r *SeriesRepository) Archive(ctx context.Context, id string) error {
	query := `
		UPDATE job_series
		SET is_active = false, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("archive series: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSeries(s scanner) (*models.Series, error) {
	var series models.Series
	if err := s.Scan(
		&series.ID,
		&series.Name,
		&series.ClientID,
		&series.PropertyID,
		&series.Pattern,
		&series.Interval,
		&series.DayOfWeek,
		&series.DayOfMonth,
		&series.StartDate,
		&series.EndDate,
		&series.DefaultCrewID,
		&series.JobTemplateID,
		&series.EstimatedDurationHours,
		&series.ServiceType,
		&series.Notes,
		&series.Description,
		&series.IsActive,
		&series.CreatedAt,
		&series.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &series, nil
}
