package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tracklawn/scheduler/internal/importer"
	"github.com/tracklawn/scheduler/internal/logger"
	"github.com/tracklawn/scheduler/internal/models"
)

// ImportSeries bulk-creates series from an uploaded Excel workbook. Rows
// that fail validation or creation are reported per row; valid rows are
// still created.
func (h *SeriesHandler) ImportSeries(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload", "details": err.Error()})
		return
	}
	defer file.Close()

	rows, rowErrors, err := importer.ParseExcelFile(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workbook", "details": err.Error()})
		return
	}

	created := make([]models.Series, 0, len(rows))
	for _, row := range rows {
		series := row.ToSeries()
		if createErr := h.service.CreateSeries(c.Request.Context(), series); createErr != nil {
			rowErrors = append(rowErrors, importer.ImportError{Row: row.Row, Error: createErr.Error()})
			continue
		}
		created = append(created, *series)
	}

	h.logger.Info("Series import completed",
		logger.Int("created", len(created)),
		logger.Int("errors", len(rowErrors)),
	)

	status := http.StatusOK
	if len(created) > 0 {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"created": created,
		"errors":  rowErrors,
	})
}
