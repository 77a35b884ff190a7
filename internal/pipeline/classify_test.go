package pipeline

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"faultwatch/internal/models"
)

func TestClassifyValueBoundaries(t *testing.T) {
	cases := []struct {
		value    float64
		fault    models.FaultType
		severity models.Severity
	}{
		{19.999, models.FaultVeryLow, models.SeverityCritical},
		{20, models.FaultLow, models.SeverityWarning},
		{39.999, models.FaultLow, models.SeverityWarning},
		{40, models.FaultNormal, models.SeverityNone},
		{80, models.FaultNormal, models.SeverityNone},
		{80.001, models.FaultHigh, models.SeverityWarning},
		{99, models.FaultHigh, models.SeverityWarning},
		{99.001, models.FaultVeryHigh, models.SeverityCritical},
		{-50, models.FaultVeryLow, models.SeverityCritical},
		{1000, models.FaultVeryHigh, models.SeverityCritical},
	}

	for _, tc := range cases {
		fault, severity, err := ClassifyValue(tc.value)
		if err != nil {
			t.Errorf("ClassifyValue(%v): unexpected error %v", tc.value, err)
			continue
		}
		if fault != tc.fault || severity != tc.severity {
			t.Errorf("ClassifyValue(%v) = (%s, %s), want (%s, %s)", tc.value, fault, severity, tc.fault, tc.severity)
		}
	}
}

func TestClassifyValueRejectsNaN(t *testing.T) {
	_, _, err := ClassifyValue(math.NaN())
	if !errors.Is(err, ErrValueNotNumeric) {
		t.Fatalf("want ErrValueNotNumeric, got %v", err)
	}
}

func TestClassifyPreservesCountAndOrder(t *testing.T) {
	long := []models.LongRecord{
		{Timestamp: "2025-01-01 00:00", Sensor: "Sensor_1", Value: 10},
		{Timestamp: "2025-01-01 00:00", Sensor: "Sensor_2", Value: 60},
		{Timestamp: "2025-01-01 00:00", Sensor: "Sensor_3", Value: 100},
	}

	out, err := Classify(long)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if len(out) != len(long) {
		t.Fatalf("got %d records, want %d", len(out), len(long))
	}
	for i := range out {
		if out[i].Sensor != long[i].Sensor || out[i].Value != long[i].Value {
			t.Errorf("record %d reordered or mutated: %+v", i, out[i])
		}
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	long := []models.LongRecord{
		{Timestamp: "2025-01-01 00:00", Sensor: "Sensor_1", Value: 19.5},
		{Timestamp: "2025-01-01 00:01", Sensor: "Sensor_1", Value: 42},
		{Timestamp: "2025-01-01 00:02", Sensor: "Sensor_1", Value: 98.7},
	}

	first, err := Classify(long)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	second, err := Classify(long)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("classify is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestClassifyAbortsWholeBatchOnNaN(t *testing.T) {
	long := []models.LongRecord{
		{Timestamp: "2025-01-01 00:00", Sensor: "Sensor_1", Value: 50},
		{Timestamp: "2025-01-01 00:00", Sensor: "Sensor_2", Value: math.NaN()},
		{Timestamp: "2025-01-01 00:00", Sensor: "Sensor_3", Value: 70},
	}

	out, err := Classify(long)
	if !errors.Is(err, ErrValueNotNumeric) {
		t.Fatalf("want ErrValueNotNumeric, got %v", err)
	}
	if out != nil {
		t.Fatalf("expected no partial output, got %d records", len(out))
	}
}

func TestReshapeThenClassifyEndToEnd(t *testing.T) {
	wide := models.WideTable{
		Columns: []string{"Sensor_1", "Sensor_2", "Sensor_3"},
		Rows: []models.WideRow{
			{Timestamp: "2025-01-01 00:00", Cells: []float64{10.0, 60.0, 100.0}},
		},
	}

	out, err := Classify(Reshape(wide))
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}

	wantFaults := []models.FaultType{models.FaultVeryLow, models.FaultNormal, models.FaultVeryHigh}
	wantSeverities := []models.Severity{models.SeverityCritical, models.SeverityNone, models.SeverityCritical}
	if len(out) != 3 {
		t.Fatalf("got %d records, want 3", len(out))
	}
	for i, rec := range out {
		if rec.FaultType != wantFaults[i] {
			t.Errorf("record %d fault = %s, want %s", i, rec.FaultType, wantFaults[i])
		}
		if rec.Severity != wantSeverities[i] {
			t.Errorf("record %d severity = %s, want %s", i, rec.Severity, wantSeverities[i])
		}
	}
}
