// Command gentemplate generates the Excel import template for job series.
// Usage: go run cmd/gentemplate/main.go
package main

import (
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

func main() {
	f := excelize.NewFile()

	// Rename Sheet1 to Series
	if err := f.SetSheetName("Sheet1", "Series"); err != nil {
		log.Fatal(err)
	}

	// Add headers
	headers := []string{
		"name", "client_id", "pattern", "interval", "day_of_week",
		"day_of_month", "start_date", "end_date", "duration", "service_type",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Series", cell, h); err != nil {
			log.Fatal(err)
		}
	}

	// Add example row 1: weekly mowing every Monday
	row1 := []string{
		"Smith residence weekly mow",
		"c0a80121-7ac0-4e1c-9f11-0d4e4bb0d6a1",
		"weekly",
		"1",
		"1",
		"",
		"2024-03-04",
		"2024-11-25",
		"1.5",
		"mowing",
	}
	for i, v := range row1 {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Series", cell, v); err != nil {
			log.Fatal(err)
		}
	}

	// Add example row 2: monthly treatment on the 15th, no end date
	row2 := []string{
		"Acme office monthly treatment",
		"9b2f6a54-2d0e-4b7a-8c3d-5e6f7a8b9c0d",
		"monthly",
		"1",
		"",
		"15",
		"2024-01-15",
		"",
		"2",
		"fertilization",
	}
	for i, v := range row2 {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Series", cell, v); err != nil {
			log.Fatal(err)
		}
	}

	// Create Instructions sheet
	if _, err := f.NewSheet("Instructions"); err != nil {
		log.Fatal(err)
	}
	instructions := []string{
		"Column Descriptions:",
		"",
		"name - Required. Display name for the series",
		"client_id - Required. Identifier of the client the work is for",
		"pattern - Required. One of: daily, weekly, monthly, quarterly, yearly, custom",
		"interval - Optional. Repeat every N periods (default: 1, e.g. 2 for biweekly)",
		"day_of_week - Optional. 0=Sunday .. 6=Saturday, required for weekly patterns",
		"day_of_month - Optional. 1-31, used by monthly patterns (clamped to month length)",
		"start_date - Required. First eligible date, YYYY-MM-DD",
		"end_date - Optional. Last eligible date, YYYY-MM-DD (must not precede start_date)",
		"duration - Optional. Estimated duration in hours (e.g., '1.5')",
		"service_type - Optional. Free-form service category (e.g., 'mowing')",
	}
	for i, line := range instructions {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Instructions", cell, line); err != nil {
			log.Fatal(err)
		}
	}

	// Ensure examples directory exists
	if err := os.MkdirAll("examples", 0755); err != nil {
		log.Fatal(err)
	}

	// Save the file
	if err := f.SaveAs("examples/series-import-template.xlsx"); err != nil {
		log.Fatal(err)
	}
	log.Println("Created examples/series-import-template.xlsx")
}
