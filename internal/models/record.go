package models

// Reserved column names that never count as sensors.
const (
	ColumnTimestamp = "Timestamp"
	ColumnFault     = "Fault"
)

// WideTable is an uploaded sensor table: one row per observation instant,
// one cell per declared column. Columns excludes Timestamp but may still
// contain the legacy Fault column; malformed numeric cells are carried
// as NaN.
type WideTable struct {
	Columns []string
	Rows    []WideRow
}

// WideRow is a single observation instant across all columns.
// Cells is index-aligned with WideTable.Columns.
type WideRow struct {
	Timestamp string
	Cells     []float64
}

// LongRecord is one (instant, sensor, value) observation produced by
// reshaping a WideTable.
type LongRecord struct {
	Timestamp string  `json:"timestamp"`
	Sensor    string  `json:"sensor"`
	Value     float64 `json:"value"`
}

// ClassifiedRecord is a LongRecord with its fault bucket attached. It is
// the terminal artifact of the pipeline and is treated as read-only by
// storage and presentation.
type ClassifiedRecord struct {
	Timestamp string    `json:"timestamp"`
	Sensor    string    `json:"sensor"`
	Value     float64   `json:"value"`
	FaultType FaultType `json:"fault_type"`
	Severity  Severity  `json:"severity"`
}
