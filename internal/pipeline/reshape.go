// Package pipeline implements the core transformation steps: reshaping
// wide sensor tables into long form and classifying each reading into a
// fault bucket. Both steps are pure functions over in-memory tables.
package pipeline

import "faultwatch/internal/models"

// Reshape melts a wide table into long form: one LongRecord per
// (row, sensor column) pair. Sensor columns are every declared column
// except the reserved Timestamp and Fault names, computed once per
// table; a Fault column is dropped from the output entirely.
//
// Output order is stable: all records for input row i precede those for
// row i+1, and within a row sensors appear in original column order.
// The result always has len(wide.Rows) * len(sensor columns) records.
func Reshape(wide models.WideTable) []models.LongRecord {
	// Set difference over declared columns, not per-row inspection.
	sensorIdx := make([]int, 0, len(wide.Columns))
	for i, col := range wide.Columns {
		if col == models.ColumnTimestamp || col == models.ColumnFault {
			continue
		}
		sensorIdx = append(sensorIdx, i)
	}

	long := make([]models.LongRecord, 0, len(wide.Rows)*len(sensorIdx))
	for _, row := range wide.Rows {
		for _, i := range sensorIdx {
			long = append(long, models.LongRecord{
				Timestamp: row.Timestamp,
				Sensor:    wide.Columns[i],
				Value:     row.Cells[i],
			})
		}
	}
	return long
}
