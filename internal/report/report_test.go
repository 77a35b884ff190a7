package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"faultwatch/internal/models"
)

func sampleRecords() []models.ClassifiedRecord {
	return []models.ClassifiedRecord{
		{Timestamp: "2025-01-01 00:00", Sensor: "Sensor_1", Value: 10, FaultType: models.FaultVeryLow, Severity: models.SeverityCritical},
		{Timestamp: "2025-01-01 00:00", Sensor: "Sensor_2", Value: 60, FaultType: models.FaultNormal, Severity: models.SeverityNone},
		{Timestamp: "2025-01-01 00:01", Sensor: "Sensor_1", Value: 25, FaultType: models.FaultLow, Severity: models.SeverityWarning},
		{Timestamp: "2025-01-02 00:00", Sensor: "Sensor_2", Value: 100, FaultType: models.FaultVeryHigh, Severity: models.SeverityCritical},
		{Timestamp: "2025-01-02 00:01", Sensor: "Sensor_2", Value: 70, FaultType: models.FaultNormal, Severity: models.SeverityNone},
	}
}

func TestBuildSummaryCounts(t *testing.T) {
	summary := BuildSummary(sampleRecords())

	if summary.TotalReadings != 5 {
		t.Fatalf("total = %d, want 5", summary.TotalReadings)
	}
	if len(summary.Sensors) != 2 {
		t.Fatalf("got %d sensors, want 2", len(summary.Sensors))
	}

	s1 := summary.Sensors[0]
	if s1.Sensor != "Sensor_1" {
		t.Fatalf("sensors not sorted: first is %q", s1.Sensor)
	}
	if s1.Total != 2 || s1.FaultReadings != 2 {
		t.Errorf("Sensor_1 totals = (%d, %d), want (2, 2)", s1.Total, s1.FaultReadings)
	}
	if s1.FaultCounts[models.FaultVeryLow] != 1 || s1.FaultCounts[models.FaultLow] != 1 {
		t.Errorf("Sensor_1 fault counts = %v", s1.FaultCounts)
	}

	s2 := summary.Sensors[1]
	if s2.SeverityCounts[models.SeverityNone] != 2 || s2.SeverityCounts[models.SeverityCritical] != 1 {
		t.Errorf("Sensor_2 severity counts = %v", s2.SeverityCounts)
	}

	if summary.SeverityBreakdown[models.SeverityCritical] != 2 ||
		summary.SeverityBreakdown[models.SeverityWarning] != 1 ||
		summary.SeverityBreakdown[models.SeverityNone] != 2 {
		t.Errorf("severity breakdown = %v", summary.SeverityBreakdown)
	}
}

func TestBuildSummaryMostFaulty(t *testing.T) {
	summary := BuildSummary(sampleRecords())
	if summary.MostFaultySensor != "Sensor_1" || summary.MostFaultyCount != 2 {
		t.Fatalf("most faulty = (%q, %d), want (Sensor_1, 2)", summary.MostFaultySensor, summary.MostFaultyCount)
	}
}

func TestBuildSummaryAllNormalHasNoCallout(t *testing.T) {
	records := []models.ClassifiedRecord{
		{Timestamp: "2025-01-01 00:00", Sensor: "Sensor_1", Value: 50, FaultType: models.FaultNormal, Severity: models.SeverityNone},
	}
	summary := BuildSummary(records)
	if summary.MostFaultySensor != "" {
		t.Fatalf("unexpected callout %q for all-normal table", summary.MostFaultySensor)
	}
}

func TestFilterByDateRange(t *testing.T) {
	from := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	filtered := FilterByDateRange(sampleRecords(), from, time.Time{})
	if len(filtered) != 2 {
		t.Fatalf("got %d records, want 2", len(filtered))
	}
	for _, rec := range filtered {
		if !strings.HasPrefix(rec.Timestamp, "2025-01-02") {
			t.Errorf("record outside range: %q", rec.Timestamp)
		}
	}
}

func TestFilterByDateRangeDropsUnparseable(t *testing.T) {
	records := []models.ClassifiedRecord{
		{Timestamp: "not-a-time", Sensor: "Sensor_1", Value: 50, FaultType: models.FaultNormal, Severity: models.SeverityNone},
	}
	if got := FilterByDateRange(records, time.Time{}, time.Time{}); len(got) != 0 {
		t.Fatalf("unparseable timestamp survived the filter: %+v", got)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords()[:1]); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "Timestamp,Sensor,Value,FaultType,Severity" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "2025-01-01 00:00,Sensor_1,10,Very Low,Critical" {
		t.Errorf("row = %q", lines[1])
	}
}
