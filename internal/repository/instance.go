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

const instanceSelectList = `id, series_id, scheduled_date, status, job_id, created_at, updated_at`

// InstanceRepository manages generated occurrence rows. The table carries
// a unique index on (series_id, scheduled_date); inserts rely on it for
// idempotent generation.
type InstanceRepository struct {
	db *sql.DB
}

// NewInstanceRepository creates a new repository.
func NewInstanceRepository(db *sql.DB) *InstanceRepository {
	return &InstanceRepository{db: db}
}

// InsertMissing inserts a scheduled instance for each date that does not
// already have one, leaving existing rows completely untouched. Conflicts
// on (series_id, scheduled_date) are absorbed as no-ops, never surfaced.
// Returns the number of rows actually inserted.
func (r *InstanceRepository) InsertMissing(ctx context.Context, seriesID string, dates []time.Time) (int, error) {
	if len(dates) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		INSERT INTO job_instances (id, series_id, scheduled_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (series_id, scheduled_date) DO NOTHING
	`

	inserted := 0
	for _, date := range dates {
		result, execErr := tx.ExecContext(ctx, query, uuid.New().String(), seriesID, date, models.StatusScheduled)
		if execErr != nil {
			err = fmt.Errorf("insert instance for %s: %w", date.Format(time.DateOnly), execErr)
			return 0, err
		}
		rows, rowsErr := result.RowsAffected()
		if rowsErr != nil {
			err = fmt.Errorf("get rows affected: %w", rowsErr)
			return 0, err
		}
		inserted += int(rows)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		err = fmt.Errorf("commit transaction: %w", commitErr)
		return 0, err
	}
	return inserted, nil
}

// ListBySeries returns every instance of a series ordered by scheduled
// date ascending.
func (r *InstanceRepository) ListBySeries(ctx context.Context, seriesID string) ([]models.Instance, error) {
	query := `
		SELECT ` + instanceSelectList + `
		FROM job_instances
		WHERE series_id = $1
		ORDER BY scheduled_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, seriesID)
	if err != nil {
		return nil, fmt.Errorf("query instances: %w", err)
	}
	defer rows.Close()

	instances := make([]models.Instance, 0)
	for rows.Next() {
		var inst models.Instance
		if scanErr := scanInstance(rows, &inst); scanErr != nil {
			return nil, fmt.Errorf("scan instance: %w", scanErr)
		}
		instances = append(instances, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate instances: %w", err)
	}
	return instances, nil
}

// GetByID returns one instance scoped to its owning series, or
// models.ErrNotFound.
func (r *InstanceRepository) GetByID(ctx context.Context, seriesID, instanceID string) (*models.Instance, error) {
	query := `
		SELECT ` + instanceSelectList + `
		FROM job_instances
		WHERE id = $1 AND series_id = $2
	`

	var inst models.Instance
	err := scanInstance(r.db.QueryRowContext(ctx, query, instanceID, seriesID), &inst)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query instance: %w", err)
	}
	return &inst, nil
}

// UpdateStatus moves an instance from one status to another with a
// row-level guard on the current status. Returns models.ErrNotFound when
// no row matched, which callers translate to a state conflict when the
// instance is known to exist.
func (r *InstanceRepository) UpdateStatus(ctx context.Context, seriesID, instanceID string, from, to models.InstanceStatus) error {
	query := `
		UPDATE job_instances
		SET status = $4, updated_at = NOW()
		WHERE id = $1 AND series_id = $2 AND status = $3`

	return r.execExpectOneRow(ctx, query, instanceID, seriesID, from, to)
}

// Convert claims a scheduled instance under a row lock, invokes createJob
// while holding it, and commits the created/job_id flip together with the
// claim. Concurrent converts serialize on the lock: exactly one wins, the
// rest observe status=created and get models.ErrInvalidTransition. When
// createJob fails the transaction rolls back and the instance stays
// scheduled with no job id, so the call is safely retryable.
func (r *InstanceRepository) Convert(
	ctx context.Context,
	seriesID, instanceID string,
	createJob func(context.Context, *models.Instance) (string, error),
) (*models.Instance, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	lockQuery := `
		SELECT ` + instanceSelectList + `
		FROM job_instances
		WHERE id = $1 AND series_id = $2
		FOR UPDATE
	`

	var inst models.Instance
	err = scanInstance(tx.QueryRowContext(ctx, lockQuery, instanceID, seriesID), &inst)
	if errors.Is(err, sql.ErrNoRows) {
		err = models.ErrNotFound
		return nil, err
	}
	if err != nil {
		err = fmt.Errorf("lock instance: %w", err)
		return nil, err
	}

	if inst.Status != models.StatusScheduled || inst.JobID != nil {
		err = fmt.Errorf("%w: cannot convert instance in status %q", models.ErrInvalidTransition, inst.Status)
		return nil, err
	}

	jobID, err := createJob(ctx, &inst)
	if err != nil {
		err = fmt.Errorf("create job: %w", err)
		return nil, err
	}

	updateQuery := `
		UPDATE job_instances
		SET status = $3, job_id = $4, updated_at = NOW()
		WHERE id = $1 AND series_id = $2`

	if _, err = tx.ExecContext(ctx, updateQuery, instanceID, seriesID, models.StatusCreated, jobID); err != nil {
		err = fmt.Errorf("mark instance converted: %w", err)
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("commit transaction: %w", err)
		return nil, err
	}

	inst.Status = models.StatusCreated
	inst.JobID = &jobID
	return &inst, nil
}

// execExpectOneRow runs an exec and returns models.ErrNotFound when no
// row was affected.
func (r *InstanceRepository) execExpectOneRow(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update instance: %w", err)
	}
	rows, rowsErr := result.RowsAffected()
	if rowsErr != nil {
		return fmt.Errorf("get affected rows: %w", rowsErr)
	}
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanInstance(s scanner, inst *models.Instance) error {
	return s.Scan(
		&inst.ID,
		&inst.SeriesID,
		&inst.ScheduledDate,
		&inst.Status,
		&inst.JobID,
		&inst.CreatedAt,
		&inst.UpdatedAt,
	)
}
