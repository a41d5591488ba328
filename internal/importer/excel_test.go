package importer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tracklawn/scheduler/internal/importer"
	"github.com/tracklawn/scheduler/internal/models"
)

var seriesHeaders = []string{
	"name", "client_id", "pattern", "interval", "day_of_week",
	"day_of_month", "start_date", "end_date", "duration", "service_type",
}

// createTestExcel builds an in-memory workbook with a Series sheet, a
// header row, and the given data rows.
func createTestExcel(t *testing.T, rows [][]string) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Series"); err != nil {
		t.Fatalf("failed to rename sheet: %v", err)
	}

	for i, h := range seriesHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue("Series", cell, h); err != nil {
			t.Fatalf("failed to set header cell: %v", err)
		}
	}

	for rowIdx, row := range rows {
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue("Series", cell, val); err != nil {
				t.Fatalf("failed to set cell: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to write Excel file: %v", err)
	}

	return bytes.NewReader(buf.Bytes())
}

func TestParseExcelFile(t *testing.T) {
	tests := []struct {
		name           string
		rows           [][]string
		wantRowCount   int
		wantErrorCount int
		wantErrorMsg   string
	}{
		{
			name: "valid file with two series",
			rows: [][]string{
				{"Weekly mow", "client-1", "weekly", "1", "1", "", "2024-01-01", "", "1.5", "mowing"},
				{"Month-end cleanup", "client-2", "monthly", "1", "", "31", "2024-01-31", "2024-12-31", "3", "cleanup"},
			},
			wantRowCount:   2,
			wantErrorCount: 0,
		},
		{
			name: "missing name",
			rows: [][]string{
				{"", "client-1", "weekly", "1", "1", "", "2024-01-01", "", "1", ""},
			},
			wantErrorCount: 1,
			wantErrorMsg:   "name is required",
		},
		{
			name: "missing client",
			rows: [][]string{
				{"Weekly mow", "", "weekly", "1", "1", "", "2024-01-01", "", "1", ""},
			},
			wantErrorCount: 1,
			wantErrorMsg:   "client_id is required",
		},
		{
			name: "unknown pattern",
			rows: [][]string{
				{"Weekly mow", "client-1", "fortnightly", "1", "1", "", "2024-01-01", "", "1", ""},
			},
			wantErrorCount: 1,
			wantErrorMsg:   "unknown pattern",
		},
		{
			name: "bad start date",
			rows: [][]string{
				{"Weekly mow", "client-1", "weekly", "1", "1", "", "01/01/2024", "", "1", ""},
			},
			wantErrorCount: 1,
			wantErrorMsg:   "start_date must be YYYY-MM-DD",
		},
		{
			name: "end date before start date",
			rows: [][]string{
				{"Weekly mow", "client-1", "weekly", "1", "1", "", "2024-06-01", "2024-01-01", "1", ""},
			},
			wantErrorCount: 1,
			wantErrorMsg:   "end_date must not be before start_date",
		},
		{
			name: "bad row does not block good rows",
			rows: [][]string{
				{"Weekly mow", "client-1", "weekly", "1", "1", "", "2024-01-01", "", "1", ""},
				{"", "client-2", "daily", "1", "", "", "2024-01-01", "", "1", ""},
			},
			wantRowCount:   1,
			wantErrorCount: 1,
			wantErrorMsg:   "name is required",
		},
		{
			name:         "empty file (header only)",
			rows:         [][]string{},
			wantRowCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := createTestExcel(t, tt.rows)

			rows, rowErrors, err := importer.ParseExcelFile(reader)
			if err != nil {
				t.Fatalf("ParseExcelFile() error = %v, want nil", err)
			}

			if len(rows) != tt.wantRowCount {
				t.Errorf("ParseExcelFile() got %d rows, want %d", len(rows), tt.wantRowCount)
			}

			if len(rowErrors) != tt.wantErrorCount {
				t.Errorf("ParseExcelFile() got %d errors, want %d", len(rowErrors), tt.wantErrorCount)
			}

			if tt.wantErrorMsg != "" && len(rowErrors) > 0 {
				if !strings.Contains(rowErrors[0].Error, tt.wantErrorMsg) {
					t.Errorf("ParseExcelFile() error = %q, want to contain %q", rowErrors[0].Error, tt.wantErrorMsg)
				}
			}
		})
	}
}

func TestParseExcelFile_NotAWorkbook(t *testing.T) {
	_, _, err := importer.ParseExcelFile(strings.NewReader("not an xlsx file"))
	if err == nil {
		t.Error("ParseExcelFile() error = nil, want error for invalid workbook")
	}
}

func TestSeriesRow_ToSeries(t *testing.T) {
	dow := 1
	end := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	row := importer.SeriesRow{
		Row:         2,
		Name:        "Weekly mow",
		ClientID:    "client-1",
		Pattern:     "weekly",
		Interval:    2,
		DayOfWeek:   &dow,
		StartDate:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     &end,
		Duration:    1.5,
		ServiceType: "mowing",
	}

	series := row.ToSeries()

	if series.Name != "Weekly mow" {
		t.Errorf("Name = %q, want %q", series.Name, "Weekly mow")
	}
	if series.Pattern != models.PatternWeekly {
		t.Errorf("Pattern = %q, want %q", series.Pattern, models.PatternWeekly)
	}
	if series.Interval != 2 {
		t.Errorf("Interval = %d, want 2", series.Interval)
	}
	if series.DayOfWeek == nil || *series.DayOfWeek != 1 {
		t.Errorf("DayOfWeek = %v, want 1", series.DayOfWeek)
	}
	if series.EndDate == nil || !series.EndDate.Equal(end) {
		t.Errorf("EndDate = %v, want %v", series.EndDate, end)
	}
	if series.ServiceType == nil || *series.ServiceType != "mowing" {
		t.Errorf("ServiceType = %v, want mowing", series.ServiceType)
	}
	if !series.IsActive {
		t.Error("IsActive = false, want true")
	}

	if err := series.Validate(); err != nil {
		t.Errorf("converted series should validate, got %v", err)
	}
}
