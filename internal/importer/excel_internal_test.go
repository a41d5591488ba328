package importer

import (
	"testing"
)

func Test_cell(t *testing.T) {
	cells := []string{"a", " b ", ""}

	tests := []struct {
		name string
		idx  int
		want string
	}{
		{"first", 0, "a"},
		{"trimmed", 1, "b"},
		{"empty", 2, ""},
		{"out of range", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cell(cells, tt.idx); got != tt.want {
				t.Errorf("cell(%d) = %q, want %q", tt.idx, got, tt.want)
			}
		})
	}
}

func Test_isEmptyRow(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  bool
	}{
		{"nil", nil, true},
		{"whitespace only", []string{"", "  ", "\t"}, true},
		{"has value", []string{"", "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmptyRow(tt.cells); got != tt.want {
				t.Errorf("isEmptyRow(%v) = %v, want %v", tt.cells, got, tt.want)
			}
		})
	}
}

func Test_parseRow_Defaults(t *testing.T) {
	row, errMsg := parseRow(2, []string{"Weekly mow", "client-1", "Weekly", "", "1", "", "2024-01-01"})
	if errMsg != "" {
		t.Fatalf("parseRow() error = %q, want none", errMsg)
	}

	if row.Interval != 1 {
		t.Errorf("Interval = %d, want default 1", row.Interval)
	}
	if row.Pattern != "weekly" {
		t.Errorf("Pattern = %q, want lowercased %q", row.Pattern, "weekly")
	}
	if row.EndDate != nil {
		t.Errorf("EndDate = %v, want nil", row.EndDate)
	}
}

func Test_parseRow_BadInterval(t *testing.T) {
	_, errMsg := parseRow(2, []string{"Weekly mow", "client-1", "weekly", "two", "1", "", "2024-01-01"})
	if errMsg == "" {
		t.Error("parseRow() expected error for non-integer interval")
	}
}
