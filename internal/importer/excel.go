// Package importer parses Excel workbooks for bulk series import.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tracklawn/scheduler/internal/models"
)

// Column indices for the Excel spreadsheet (0-based).
const (
	colName        = 0 // Column A
	colClientID    = 1 // Column B
	colPattern     = 2 // Column C
	colInterval    = 3 // Column D
	colDayOfWeek   = 4 // Column E
	colDayOfMonth  = 5 // Column F
	colStartDate   = 6 // Column G
	colEndDate     = 7 // Column H
	colDuration    = 8 // Column I
	colServiceType = 9 // Column J

	minRequiredColumns = 7
	sheetName          = "Series"
)

// dateLayout is the expected date format for start_date and end_date.
const dateLayout = "2006-01-02"

// SeriesRow represents a parsed row from the Excel spreadsheet.
type SeriesRow struct {
	Row         int // Excel row number (for error reporting)
	Name        string
	ClientID    string
	Pattern     string
	Interval    int
	DayOfWeek   *int
	DayOfMonth  *int
	StartDate   time.Time
	EndDate     *time.Time
	Duration    float64
	ServiceType string
}

// ImportError represents a validation error for a specific row.
type ImportError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ParseExcelFile reads the Series sheet and returns the valid rows plus
// per-row errors for the rest. The first row is treated as the header.
func ParseExcelFile(r io.Reader) ([]SeriesRow, []ImportError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}

	var (
		parsed    []SeriesRow
		rowErrors []ImportError
	)
	for i, cells := range rows {
		if i == 0 {
			continue // header
		}
		rowNum := i + 1

		if isEmptyRow(cells) {
			continue
		}
		if len(cells) < minRequiredColumns {
			rowErrors = append(rowErrors, ImportError{Row: rowNum, Error: "too few columns"})
			continue
		}

		row, parseErr := parseRow(rowNum, cells)
		if parseErr != "" {
			rowErrors = append(rowErrors, ImportError{Row: rowNum, Error: parseErr})
			continue
		}
		if msg := ValidateRow(row); msg != "" {
			rowErrors = append(rowErrors, ImportError{Row: rowNum, Error: msg})
			continue
		}

		parsed = append(parsed, row)
	}

	return parsed, rowErrors, nil
}

// ValidateRow validates a single row and returns an error message or empty string.
func ValidateRow(row SeriesRow) string {
	if strings.TrimSpace(row.Name) == "" {
		return "name is required"
	}
	if strings.TrimSpace(row.ClientID) == "" {
		return "client_id is required"
	}
	if !models.RecurrencePattern(row.Pattern).Valid() {
		return fmt.Sprintf("unknown pattern %q", row.Pattern)
	}
	if row.Interval < 1 {
		return "interval must be at least 1"
	}
	if row.StartDate.IsZero() {
		return "start_date is required"
	}
	if row.EndDate != nil && row.EndDate.Before(row.StartDate) {
		return "end_date must not be before start_date"
	}
	if row.Duration < 0 {
		return "duration must be non-negative"
	}
	return ""
}

// ToSeries converts a validated row into a series model.
func (row SeriesRow) ToSeries() *models.Series {
	s := &models.Series{
		Name:                   row.Name,
		ClientID:               row.ClientID,
		Pattern:                models.RecurrencePattern(row.Pattern),
		Interval:               row.Interval,
		DayOfWeek:              row.DayOfWeek,
		DayOfMonth:             row.DayOfMonth,
		StartDate:              row.StartDate,
		EndDate:                row.EndDate,
		EstimatedDurationHours: row.Duration,
		IsActive:               true,
	}
	if row.ServiceType != "" {
		serviceType := row.ServiceType
		s.ServiceType = &serviceType
	}
	return s
}

func parseRow(rowNum int, cells []string) (SeriesRow, string) {
	row := SeriesRow{
		Row:      rowNum,
		Name:     cell(cells, colName),
		ClientID: cell(cells, colClientID),
		Pattern:  strings.ToLower(cell(cells, colPattern)),
		Interval: 1,
	}

	if raw := cell(cells, colInterval); raw != "" {
		interval, err := strconv.Atoi(raw)
		if err != nil {
			return row, "interval must be an integer"
		}
		row.Interval = interval
	}

	if raw := cell(cells, colDayOfWeek); raw != "" {
		dow, err := strconv.Atoi(raw)
		if err != nil {
			return row, "day_of_week must be an integer"
		}
		row.DayOfWeek = &dow
	}

	if raw := cell(cells, colDayOfMonth); raw != "" {
		dom, err := strconv.Atoi(raw)
		if err != nil {
			return row, "day_of_month must be an integer"
		}
		row.DayOfMonth = &dom
	}

	if raw := cell(cells, colStartDate); raw != "" {
		start, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			return row, "start_date must be YYYY-MM-DD"
		}
		row.StartDate = start
	}

	if raw := cell(cells, colEndDate); raw != "" {
		end, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			return row, "end_date must be YYYY-MM-DD"
		}
		row.EndDate = &end
	}

	if raw := cell(cells, colDuration); raw != "" {
		duration, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return row, "duration must be a number"
		}
		row.Duration = duration
	}

	row.ServiceType = cell(cells, colServiceType)

	return row, ""
}

func cell(cells []string, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
