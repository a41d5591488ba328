package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tracklawn/scheduler/internal/events"
	"github.com/tracklawn/scheduler/internal/logger"
	"github.com/tracklawn/scheduler/internal/models"
)

// InstanceHandler serves the instance routes under a series.
type InstanceHandler struct {
	service   SchedulerService
	publisher *events.Publisher
	logger    logger.Logger
}

// NewInstanceHandler creates an instance handler. publisher may be nil
// when event publishing is disabled.
func NewInstanceHandler(service SchedulerService, publisher *events.Publisher, log logger.Logger) *InstanceHandler {
	return &InstanceHandler{
		service:   service,
		publisher: publisher,
		logger:    log,
	}
}

func (h *InstanceHandler) List(c *gin.Context) {
	seriesID := c.Param("id")

	instances, err := h.service.ListInstances(c.Request.Context(), seriesID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Series not found"})
			return
		}
		h.logger.Error("Failed to list instances",
			logger.String("series_id", seriesID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list instances"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"instances": instances,
		"count":     len(instances),
	})
}

type statusRequest struct {
	Status models.InstanceStatus `json:"status" binding:"required"`
}

func (h *InstanceHandler) UpdateStatus(c *gin.Context) {
	seriesID := c.Param("id")
	instanceID := c.Param("instanceId")

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	inst, err := h.service.UpdateInstanceStatus(c.Request.Context(), seriesID, instanceID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Instance not found"})
		case errors.Is(err, models.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to update instance status",
				logger.String("series_id", seriesID),
				logger.String("instance_id", instanceID),
				logger.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update instance status"})
		}
		return
	}

	eventType := events.InstanceSkipped
	if inst.Status == models.StatusScheduled {
		eventType = events.InstanceReactivated
	}
	h.publisher.PublishAsync(events.ScheduleEvent{
		EventType: eventType,
		SeriesID:  seriesID,
		Payload: events.InstanceStatusPayload{
			InstanceID:    inst.ID,
			ScheduledDate: inst.ScheduledDate,
		},
	})

	c.JSON(http.StatusOK, inst)
}

func (h *InstanceHandler) Convert(c *gin.Context) {
	seriesID := c.Param("id")
	instanceID := c.Param("instanceId")

	inst, job, err := h.service.ConvertInstance(c.Request.Context(), seriesID, instanceID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Instance not found"})
		case errors.Is(err, models.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "Instance already converted or not convertible"})
		default:
			h.logger.Error("Failed to convert instance",
				logger.String("series_id", seriesID),
				logger.String("instance_id", instanceID),
				logger.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert instance"})
		}
		return
	}

	h.publisher.PublishAsync(events.ScheduleEvent{
		EventType: events.InstanceConverted,
		SeriesID:  seriesID,
		Payload: events.InstanceConvertedPayload{
			InstanceID:    inst.ID,
			JobID:         job.ID,
			ScheduledDate: inst.ScheduledDate,
		},
	})

	c.JSON(http.StatusCreated, gin.H{
		"instance": inst,
		"job":      job,
	})
}
