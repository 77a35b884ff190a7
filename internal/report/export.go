package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"faultwatch/internal/models"
)

// csvHeader is the exported column layout, matching the stored schema.
var csvHeader = []string{"Timestamp", "Sensor", "Value", "FaultType", "Severity"}

// WriteCSV streams classified records as CSV, header first.
func WriteCSV(w io.Writer, records []models.ClassifiedRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.Timestamp,
			rec.Sensor,
			strconv.FormatFloat(rec.Value, 'f', -1, 64),
			string(rec.FaultType),
			string(rec.Severity),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
