package ingest

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParseWideCSV(t *testing.T) {
	input := "Timestamp,Sensor_1,Sensor_2,Sensor_3\n" +
		"2025-01-01 00:00,50.0,30.0,70.0\n" +
		"2025-01-01 00:01,55.0,35.0,65.0\n"

	table, err := ParseWideCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	wantColumns := []string{"Sensor_1", "Sensor_2", "Sensor_3"}
	if len(table.Columns) != len(wantColumns) {
		t.Fatalf("columns = %v, want %v", table.Columns, wantColumns)
	}
	for i, col := range wantColumns {
		if table.Columns[i] != col {
			t.Errorf("column %d = %q, want %q", i, table.Columns[i], col)
		}
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	if table.Rows[0].Timestamp != "2025-01-01 00:00" {
		t.Errorf("row 0 timestamp = %q", table.Rows[0].Timestamp)
	}
	if table.Rows[1].Cells[2] != 65.0 {
		t.Errorf("row 1 cell 2 = %v, want 65", table.Rows[1].Cells[2])
	}
}

func TestParseWideCSVKeepsFaultColumn(t *testing.T) {
	input := "Timestamp,Sensor_1,Fault\n2025-01-01 00:00,50.0,1\n"

	table, err := ParseWideCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// Fault survives parsing; the reshaper is the one that drops it.
	if len(table.Columns) != 2 || table.Columns[1] != "Fault" {
		t.Fatalf("columns = %v, want [Sensor_1 Fault]", table.Columns)
	}
}

func TestParseWideCSVMissingTimestamp(t *testing.T) {
	input := "Sensor_1,Sensor_2\n50.0,30.0\n"
	_, err := ParseWideCSV(strings.NewReader(input))
	if !errors.Is(err, ErrNoTimestamp) {
		t.Fatalf("want ErrNoTimestamp, got %v", err)
	}
}

func TestParseWideCSVEmptyInput(t *testing.T) {
	for _, input := range []string{"", "Timestamp,Sensor_1\n"} {
		_, err := ParseWideCSV(strings.NewReader(input))
		if !errors.Is(err, ErrEmptyInput) {
			t.Fatalf("input %q: want ErrEmptyInput, got %v", input, err)
		}
	}
}

func TestParseWideCSVMalformedCellBecomesNaN(t *testing.T) {
	input := "Timestamp,Sensor_1,Sensor_2\n2025-01-01 00:00,oops,\n"

	table, err := ParseWideCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for i, cell := range table.Rows[0].Cells {
		if !math.IsNaN(cell) {
			t.Errorf("cell %d = %v, want NaN", i, cell)
		}
	}
}
