// Package handlers exposes the scheduling API over HTTP.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tracklawn/scheduler/internal/events"
	"github.com/tracklawn/scheduler/internal/logger"
	"github.com/tracklawn/scheduler/internal/models"
	"github.com/tracklawn/scheduler/internal/scheduler"
)

// SchedulerService is the scheduling surface the handlers depend on.
type SchedulerService interface {
	CreateSeries(ctx context.Context, series *models.Series) error
	ListSeries(ctx context.Context) ([]models.Series, error)
	GetSeries(ctx context.Context, seriesID string) (*models.Series, error)
	ArchiveSeries(ctx context.Context, seriesID string) error
	GenerateInstances(ctx context.Context, seriesID string, horizonDays int) ([]models.Instance, error)
	ListInstances(ctx context.Context, seriesID string) ([]models.Instance, error)
	UpdateInstanceStatus(ctx context.Context, seriesID, instanceID string, target models.InstanceStatus) (*models.Instance, error)
	ConvertInstance(ctx context.Context, seriesID, instanceID string) (*models.Instance, *models.Job, error)
}

// SeriesHandler serves the /series routes.
type SeriesHandler struct {
	service   SchedulerService
	publisher *events.Publisher
	logger    logger.Logger
}

// NewSeriesHandler creates a series handler. publisher may be nil when
// event publishing is disabled.
func NewSeriesHandler(service SchedulerService, publisher *events.Publisher, log logger.Logger) *SeriesHandler {
	return &SeriesHandler{
		service:   service,
		publisher: publisher,
		logger:    log,
	}
}

func (h *SeriesHandler) Create(c *gin.Context) {
	var series models.Series
	if err := c.ShouldBindJSON(&series); err != nil {
		h.logger.Debug("Invalid request body",
			logger.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.service.CreateSeries(c.Request.Context(), &series); err != nil {
		if errors.Is(err, models.ErrInvalidSeries) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to create series",
			logger.String("series_name", series.Name),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create series"})
		return
	}

	h.publisher.PublishAsync(events.ScheduleEvent{
		EventType: events.SeriesCreated,
		SeriesID:  series.ID,
		Payload: events.SeriesCreatedPayload{
			Name:     series.Name,
			ClientID: series.ClientID,
			Pattern:  string(series.Pattern),
			Interval: series.Interval,
		},
	})

	c.JSON(http.StatusCreated, series)
}

func (h *SeriesHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	series, err := h.service.GetSeries(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Series not found"})
			return
		}
		h.logger.Error("Failed to get series",
			logger.String("series_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get series"})
		return
	}

	c.JSON(http.StatusOK, series)
}

func (h *SeriesHandler) List(c *gin.Context) {
	series, err := h.service.ListSeries(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list series",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list series"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"series": series,
		"count":  len(series),
	})
}

func (h *SeriesHandler) Archive(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.ArchiveSeries(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Series not found"})
			return
		}
		h.logger.Error("Failed to archive series",
			logger.String("series_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive series"})
		return
	}

	h.publisher.PublishAsync(events.ScheduleEvent{
		EventType: events.SeriesArchived,
		SeriesID:  id,
	})

	c.JSON(http.StatusNoContent, nil)
}

type generateRequest struct {
	HorizonDays int `json:"horizon_days"`
}

func (h *SeriesHandler) GenerateInstances(c *gin.Context) {
	id := c.Param("id")

	req := generateRequest{HorizonDays: scheduler.DefaultHorizonDays}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}
	}

	instances, err := h.service.GenerateInstances(c.Request.Context(), id, req.HorizonDays)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Series not found"})
		case errors.Is(err, models.ErrInvalidHorizon), errors.Is(err, models.ErrInvalidSeries):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrSeriesInactive):
			c.JSON(http.StatusConflict, gin.H{"error": "Series is archived"})
		default:
			h.logger.Error("Failed to generate instances",
				logger.String("series_id", id),
				logger.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate instances"})
		}
		return
	}

	h.publisher.PublishAsync(events.ScheduleEvent{
		EventType: events.InstancesGenerated,
		SeriesID:  id,
		Payload: events.InstancesGeneratedPayload{
			HorizonDays: req.HorizonDays,
			Count:       len(instances),
		},
	})

	c.JSON(http.StatusOK, gin.H{
		"instances": instances,
		"count":     len(instances),
	})
}
