package pipeline

import (
	"errors"
	"fmt"
	"math"

	"faultwatch/internal/models"
)

// ErrValueNotNumeric reports a reading whose value cannot be compared
// against the thresholds (missing or malformed input cell).
var ErrValueNotNumeric = errors.New("value is not numeric")

// thresholds is the ordered rule table; the first matching predicate
// wins. The intervals are half-open and cover every finite value:
//
//	v < 20        Very Low
//	20 <= v < 40  Low
//	40 <= v <= 80 Normal
//	80 < v <= 99  High
//	v > 99        Very High
var thresholds = []struct {
	match func(v float64) bool
	fault models.FaultType
}{
	{func(v float64) bool { return v < 20 }, models.FaultVeryLow},
	{func(v float64) bool { return v < 40 }, models.FaultLow},
	{func(v float64) bool { return v <= 80 }, models.FaultNormal},
	{func(v float64) bool { return v <= 99 }, models.FaultHigh},
	{func(v float64) bool { return true }, models.FaultVeryHigh},
}

// ClassifyValue buckets a single reading. NaN is rejected: silently
// letting it fall through the comparison chain would misreport missing
// data as Very High.
func ClassifyValue(v float64) (models.FaultType, models.Severity, error) {
	if math.IsNaN(v) {
		return "", "", ErrValueNotNumeric
	}
	for _, rule := range thresholds {
		if rule.match(v) {
			return rule.fault, models.SeverityOf(rule.fault), nil
		}
	}
	// Unreachable: the last rule matches everything.
	return "", "", fmt.Errorf("no threshold matched %v", v)
}

// Classify buckets every record in the batch. Output order and count
// match the input one to one. A single unclassifiable record aborts the
// whole batch: the caller gets no partial result.
func Classify(long []models.LongRecord) ([]models.ClassifiedRecord, error) {
	out := make([]models.ClassifiedRecord, 0, len(long))
	for i, rec := range long {
		fault, severity, err := ClassifyValue(rec.Value)
		if err != nil {
			return nil, fmt.Errorf("classify record %d (sensor %s at %s): %w", i, rec.Sensor, rec.Timestamp, err)
		}
		out = append(out, models.ClassifiedRecord{
			Timestamp: rec.Timestamp,
			Sensor:    rec.Sensor,
			Value:     rec.Value,
			FaultType: fault,
			Severity:  severity,
		})
	}
	return out, nil
}
