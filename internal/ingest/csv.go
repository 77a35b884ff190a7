// Package ingest decodes uploaded wide CSV tables and enforces the
// input schema before the pipeline runs.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"faultwatch/internal/models"
)

var (
	// ErrEmptyInput reports an upload with a header but no data rows,
	// or no content at all.
	ErrEmptyInput = errors.New("input contains no data rows")

	// ErrNoTimestamp reports a header without the required Timestamp column.
	ErrNoTimestamp = errors.New("required column Timestamp is missing")
)

// ParseWideCSV reads a wide sensor table. The first record is the
// header; a Timestamp column is required, every other column is kept in
// header order. Cells that do not parse as numbers (including blanks)
// are carried as NaN so the classifier can reject them explicitly.
func ParseWideCSV(r io.Reader) (models.WideTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return models.WideTable{}, ErrEmptyInput
	}
	if err != nil {
		return models.WideTable{}, fmt.Errorf("read header: %w", err)
	}

	tsIdx := -1
	columns := make([]string, 0, len(header))
	cellIdx := make([]int, 0, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if name == models.ColumnTimestamp {
			tsIdx = i
			continue
		}
		columns = append(columns, name)
		cellIdx = append(cellIdx, i)
	}
	if tsIdx < 0 {
		return models.WideTable{}, ErrNoTimestamp
	}

	table := models.WideTable{Columns: columns}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.WideTable{}, fmt.Errorf("read line %d: %w", line, err)
		}

		row := models.WideRow{
			Timestamp: strings.TrimSpace(record[tsIdx]),
			Cells:     make([]float64, len(cellIdx)),
		}
		for j, i := range cellIdx {
			row.Cells[j] = parseCell(record[i])
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return models.WideTable{}, ErrEmptyInput
	}
	return table, nil
}

// parseCell coerces a raw cell to a number, NaN when malformed.
func parseCell(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
