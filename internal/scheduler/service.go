// Package scheduler orchestrates recurring job series: idempotent
// materialization of dated instances over a forward horizon, instance
// lifecycle transitions, and exactly-once conversion of an instance into
// a billable Job.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tracklawn/scheduler/internal/logger"
	"github.com/tracklawn/scheduler/internal/models"
	"github.com/tracklawn/scheduler/internal/recurrence"
)

// DefaultHorizonDays is the forward window used when a generation request
// does not specify one.
const DefaultHorizonDays = 60

// SeriesStore is the series persistence consumed by the service.
type SeriesStore interface {
	Create(ctx context.Context, series *models.Series) error
	GetByID(ctx context.Context, id string) (*models.Series, error)
	List(ctx context.Context) ([]models.Series, error)
	ListActive(ctx context.Context) ([]models.Series, error)
	Archive(ctx context.Context, id string) error
}

// InstanceStore is the instance persistence consumed by the service.
type InstanceStore interface {
	InsertMissing(ctx context.Context, seriesID string, dates []time.Time) (int, error)
	ListBySeries(ctx context.Context, seriesID string) ([]models.Instance, error)
	GetByID(ctx context.Context, seriesID, instanceID string) (*models.Instance, error)
	UpdateStatus(ctx context.Context, seriesID, instanceID string, from, to models.InstanceStatus) error
	Convert(ctx context.Context, seriesID, instanceID string, createJob func(context.Context, *models.Instance) (string, error)) (*models.Instance, error)
}

// JobCreator is the external job service collaborator.
type JobCreator interface {
	CreateJob(ctx context.Context, req models.JobRequest) (*models.Job, error)
}

// Service implements the scheduling operations over the stores and the
// job collaborator.
type Service struct {
	series    SeriesStore
	instances InstanceStore
	jobs      JobCreator
	logger    logger.Logger

	// now is the clock used to anchor generation windows; tests override it.
	now func() time.Time
}

// NewService creates a scheduler service.
func NewService(series SeriesStore, instances InstanceStore, jobs JobCreator, log logger.Logger) *Service {
	return &Service{
		series:    series,
		instances: instances,
		jobs:      jobs,
		logger:    log,
		now:       time.Now,
	}
}

// CreateSeries validates and persists a new series.
func (s *Service) CreateSeries(ctx context.Context, series *models.Series) error {
	if err := s.series.Create(ctx, series); err != nil {
		return err
	}
	s.logger.Info("Series created",
		logger.String("series_id", series.ID),
		logger.String("series_name", series.Name),
		logger.String("pattern", string(series.Pattern)),
	)
	return nil
}

// ListSeries returns all series.
func (s *Service) ListSeries(ctx context.Context) ([]models.Series, error) {
	return s.series.List(ctx)
}

// GetSeries returns one series by id.
func (s *Service) GetSeries(ctx context.Context, seriesID string) (*models.Series, error) {
	return s.series.GetByID(ctx, seriesID)
}

// ArchiveSeries soft-deletes a series. Its remaining instances are left
// untouched; generation simply stops being permitted.
func (s *Service) ArchiveSeries(ctx context.Context, seriesID string) error {
	if err := s.series.Archive(ctx, seriesID); err != nil {
		return err
	}
	s.logger.Info("Series archived", logger.String("series_id", seriesID))
	return nil
}

// GenerateInstances materializes instances for the next horizonDays and
// returns the series' full instance set sorted by scheduled date. The
// operation is idempotent: dates that already have an instance are left
// completely untouched, whatever their status.
func (s *Service) GenerateInstances(ctx context.Context, seriesID string, horizonDays int) ([]models.Instance, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("%w: got %d", models.ErrInvalidHorizon, horizonDays)
	}

	series, err := s.series.GetByID(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	if !series.IsActive {
		return nil, fmt.Errorf("%w: %s", models.ErrSeriesInactive, seriesID)
	}

	rule, err := recurrence.RuleFor(series)
	if err != nil {
		return nil, err
	}

	// The horizon counts today as its first day, so N days span
	// [today, today+N-1].
	today := recurrence.DateOf(s.now())
	dates := rule.Occurrences(today, today.AddDate(0, 0, horizonDays-1))

	inserted, err := s.instances.InsertMissing(ctx, seriesID, dates)
	if err != nil {
		return nil, fmt.Errorf("materialize instances: %w", err)
	}

	s.logger.Info("Instances generated",
		logger.String("series_id", seriesID),
		logger.Int("horizon_days", horizonDays),
		logger.Int("candidates", len(dates)),
		logger.Int("inserted", inserted),
	)

	return s.instances.ListBySeries(ctx, seriesID)
}

// ListInstances returns a series' instances sorted by scheduled date.
// The series must exist.
func (s *Service) ListInstances(ctx context.Context, seriesID string) ([]models.Instance, error) {
	if _, err := s.series.GetByID(ctx, seriesID); err != nil {
		return nil, err
	}
	return s.instances.ListBySeries(ctx, seriesID)
}

// UpdateInstanceStatus performs the user-driven skip / re-activate pair.
// Only scheduled and skipped are accepted as targets; everything else is
// rejected before any lookup.
func (s *Service) UpdateInstanceStatus(ctx context.Context, seriesID, instanceID string, target models.InstanceStatus) (*models.Instance, error) {
	if target != models.StatusScheduled && target != models.StatusSkipped {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidStatus, target)
	}

	inst, err := s.instances.GetByID(ctx, seriesID, instanceID)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(inst.Status, target); err != nil {
		return nil, err
	}

	err = s.instances.UpdateStatus(ctx, seriesID, instanceID, inst.Status, target)
	if errors.Is(err, models.ErrNotFound) {
		// The instance existed a moment ago; the guard missed because a
		// concurrent writer changed its status first.
		return nil, fmt.Errorf("%w: instance %s changed concurrently", models.ErrInvalidTransition, instanceID)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Instance status updated",
		logger.String("series_id", seriesID),
		logger.String("instance_id", instanceID),
		logger.String("from", string(inst.Status)),
		logger.String("to", string(target)),
	)

	return s.instances.GetByID(ctx, seriesID, instanceID)
}

// ConvertInstance turns a scheduled instance into a real Job, exactly
// once. The job service call happens while the instance row is locked;
// if it fails the instance is left untouched and the call can be
// retried. A second convert of the same instance fails with
// models.ErrInvalidTransition and creates no further Job.
func (s *Service) ConvertInstance(ctx context.Context, seriesID, instanceID string) (*models.Instance, *models.Job, error) {
	series, err := s.series.GetByID(ctx, seriesID)
	if err != nil {
		return nil, nil, err
	}

	var job *models.Job
	inst, err := s.instances.Convert(ctx, seriesID, instanceID, func(ctx context.Context, locked *models.Instance) (string, error) {
		created, createErr := s.jobs.CreateJob(ctx, seedJobRequest(series, locked))
		if createErr != nil {
			return "", createErr
		}
		job = created
		return created.ID, nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("Instance converted to job",
		logger.String("series_id", seriesID),
		logger.String("instance_id", instanceID),
		logger.String("job_id", job.ID),
	)

	return inst, job, nil
}

// seedJobRequest copies the series defaults and the instance date into a
// job creation request.
func seedJobRequest(series *models.Series, inst *models.Instance) models.JobRequest {
	return models.JobRequest{
		ClientID:               series.ClientID,
		PropertyID:             series.PropertyID,
		CrewID:                 series.DefaultCrewID,
		JobTemplateID:          series.JobTemplateID,
		ScheduledDate:          inst.ScheduledDate,
		EstimatedDurationHours: series.EstimatedDurationHours,
		ServiceType:            series.ServiceType,
		Notes:                  series.Notes,
		Description:            series.Description,
		SeriesID:               series.ID,
	}
}

// RegenerateAll runs GenerateInstances for every active series. Used by
// the background regeneration worker; per-series failures are logged and
// do not stop the sweep.
func (s *Service) RegenerateAll(ctx context.Context, horizonDays int) error {
	active, err := s.series.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active series: %w", err)
	}

	for i := range active {
		if _, genErr := s.GenerateInstances(ctx, active[i].ID, horizonDays); genErr != nil {
			s.logger.Error("Failed to regenerate series",
				logger.String("series_id", active[i].ID),
				logger.Error(genErr),
			)
		}
	}
	return nil
}
