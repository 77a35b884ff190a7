package pipeline

import (
	"math"
	"testing"

	"faultwatch/internal/models"
)

func TestReshapeRowCount(t *testing.T) {
	wide := models.WideTable{
		Columns: []string{"Sensor_1", "Sensor_2", "Sensor_3"},
		Rows: []models.WideRow{
			{Timestamp: "2025-01-01 00:00", Cells: []float64{50, 30, 70}},
			{Timestamp: "2025-01-01 00:01", Cells: []float64{55, 35, 65}},
		},
	}

	long := Reshape(wide)
	if got, want := len(long), 6; got != want {
		t.Fatalf("reshape produced %d records, want %d", got, want)
	}
}

func TestReshapeColumnOrderPerRow(t *testing.T) {
	wide := models.WideTable{
		Columns: []string{"Sensor_2", "Sensor_1", "Sensor_3"},
		Rows: []models.WideRow{
			{Timestamp: "2025-01-01 00:00", Cells: []float64{1, 2, 3}},
			{Timestamp: "2025-01-01 00:01", Cells: []float64{4, 5, 6}},
		},
	}

	long := Reshape(wide)
	wantSensors := []string{"Sensor_2", "Sensor_1", "Sensor_3", "Sensor_2", "Sensor_1", "Sensor_3"}
	wantValues := []float64{1, 2, 3, 4, 5, 6}
	for i, rec := range long {
		if rec.Sensor != wantSensors[i] {
			t.Errorf("record %d sensor = %q, want %q", i, rec.Sensor, wantSensors[i])
		}
		if rec.Value != wantValues[i] {
			t.Errorf("record %d value = %v, want %v", i, rec.Value, wantValues[i])
		}
	}
	if long[0].Timestamp != "2025-01-01 00:00" || long[3].Timestamp != "2025-01-01 00:01" {
		t.Errorf("rows interleaved: %q then %q", long[0].Timestamp, long[3].Timestamp)
	}
}

func TestReshapeDropsFaultColumn(t *testing.T) {
	wide := models.WideTable{
		Columns: []string{"Sensor_1", "Fault", "Sensor_2"},
		Rows: []models.WideRow{
			{Timestamp: "2025-01-01 00:00", Cells: []float64{50, 1, 30}},
		},
	}

	long := Reshape(wide)
	if len(long) != 2 {
		t.Fatalf("got %d records, want 2", len(long))
	}
	for _, rec := range long {
		if rec.Sensor == "Fault" {
			t.Fatalf("Fault column leaked into output: %+v", rec)
		}
	}
}

func TestReshapeZeroSensorColumns(t *testing.T) {
	wide := models.WideTable{
		Columns: []string{"Fault"},
		Rows: []models.WideRow{
			{Timestamp: "2025-01-01 00:00", Cells: []float64{0}},
		},
	}
	if long := Reshape(wide); len(long) != 0 {
		t.Fatalf("expected empty output, got %d records", len(long))
	}
}

func TestReshapeKeepsDuplicateTimestamps(t *testing.T) {
	wide := models.WideTable{
		Columns: []string{"Sensor_1"},
		Rows: []models.WideRow{
			{Timestamp: "2025-01-01 00:00", Cells: []float64{10}},
			{Timestamp: "2025-01-01 00:00", Cells: []float64{20}},
		},
	}
	long := Reshape(wide)
	if len(long) != 2 {
		t.Fatalf("duplicate timestamps deduplicated: got %d records", len(long))
	}
}

func TestReshapePassesThroughNaN(t *testing.T) {
	wide := models.WideTable{
		Columns: []string{"Sensor_1"},
		Rows: []models.WideRow{
			{Timestamp: "2025-01-01 00:00", Cells: []float64{math.NaN()}},
		},
	}
	long := Reshape(wide)
	if len(long) != 1 || !math.IsNaN(long[0].Value) {
		t.Fatalf("NaN cell not passed through: %+v", long)
	}
}
