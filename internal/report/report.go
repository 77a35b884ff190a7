// Package report derives summary views from classified readings. All
// functions are read-only consumers of the pipeline's output.
package report

import (
	"sort"
	"time"

	"faultwatch/internal/models"
)

// SensorSummary aggregates one sensor's readings.
type SensorSummary struct {
	Sensor         string                   `json:"sensor"`
	Total          int                      `json:"total"`
	FaultReadings  int                      `json:"fault_readings"` // readings outside Normal
	FaultCounts    map[models.FaultType]int `json:"fault_counts"`
	SeverityCounts map[models.Severity]int  `json:"severity_counts"`
}

// Summary is the dashboard payload: per-sensor aggregation plus the
// overall severity breakdown and the most-faulty callout.
type Summary struct {
	TotalReadings     int                     `json:"total_readings"`
	Sensors           []SensorSummary         `json:"sensors"`
	SeverityBreakdown map[models.Severity]int `json:"severity_breakdown"`
	MostFaultySensor  string                  `json:"most_faulty_sensor,omitempty"`
	MostFaultyCount   int                     `json:"most_faulty_count,omitempty"`
}

// BuildSummary aggregates counts by sensor, fault type, and severity.
// Sensors are listed alphabetically. The most-faulty callout names the
// sensor with the most non-Normal readings; an all-Normal table has none.
func BuildSummary(records []models.ClassifiedRecord) Summary {
	bySensor := make(map[string]*SensorSummary)
	breakdown := make(map[models.Severity]int)

	for _, rec := range records {
		s, ok := bySensor[rec.Sensor]
		if !ok {
			s = &SensorSummary{
				Sensor:         rec.Sensor,
				FaultCounts:    make(map[models.FaultType]int),
				SeverityCounts: make(map[models.Severity]int),
			}
			bySensor[rec.Sensor] = s
		}
		s.Total++
		s.FaultCounts[rec.FaultType]++
		s.SeverityCounts[rec.Severity]++
		if rec.FaultType != models.FaultNormal {
			s.FaultReadings++
		}
		breakdown[rec.Severity]++
	}

	summary := Summary{
		TotalReadings:     len(records),
		SeverityBreakdown: breakdown,
		Sensors:           make([]SensorSummary, 0, len(bySensor)),
	}
	for _, s := range bySensor {
		summary.Sensors = append(summary.Sensors, *s)
	}
	sort.Slice(summary.Sensors, func(i, j int) bool {
		return summary.Sensors[i].Sensor < summary.Sensors[j].Sensor
	})

	for _, s := range summary.Sensors {
		if s.FaultReadings > summary.MostFaultyCount {
			summary.MostFaultySensor = s.Sensor
			summary.MostFaultyCount = s.FaultReadings
		}
	}
	return summary
}

// timestampLayouts are tried in order when parsing stored timestamps.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a stored timestamp string.
func ParseTimestamp(raw string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FilterByDateRange keeps records whose timestamp parses and falls in
// [from, to]. Unparseable timestamps are dropped, matching how the
// dashboard coerced and discarded them. Zero bounds are open-ended.
func FilterByDateRange(records []models.ClassifiedRecord, from, to time.Time) []models.ClassifiedRecord {
	out := make([]models.ClassifiedRecord, 0, len(records))
	for _, rec := range records {
		ts, ok := ParseTimestamp(rec.Timestamp)
		if !ok {
			continue
		}
		if !from.IsZero() && ts.Before(from) {
			continue
		}
		if !to.IsZero() && ts.After(to) {
			continue
		}
		out = append(out, rec)
	}
	return out
}
