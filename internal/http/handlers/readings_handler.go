package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"faultwatch/internal/models"
	"faultwatch/internal/service"
)

const dateLayout = "2006-01-02"

// ReadingsHandler lists stored classified readings.
type ReadingsHandler struct {
	service *service.ReportService
	logger  *zap.Logger
}

// NewReadingsHandler returns handler.
func NewReadingsHandler(service *service.ReportService, logger *zap.Logger) *ReadingsHandler {
	return &ReadingsHandler{
		service: service,
		logger:  logger,
	}
}

// ServeHTTP handles GET /api/v1/readings with optional sensor, from,
// to (YYYY-MM-DD, inclusive), and limit query parameters.
func (h *ReadingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query, err := parseRecordQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.service.Records(r.Context(), query)
	if err != nil {
		h.logger.Error("failed to fetch readings", zap.Error(err))
		http.Error(w, "failed to fetch readings", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.ClassifiedRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"count":    len(records),
		"readings": records,
	})
}

func parseRecordQuery(r *http.Request) (service.RecordQuery, error) {
	q := service.RecordQuery{Sensor: r.URL.Query().Get("sensor")}

	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return q, fmt.Errorf("invalid query parameter: from")
		}
		q.From = t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return q, fmt.Errorf("invalid query parameter: to")
		}
		// Inclusive end date: extend to the last instant of the day.
		q.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return q, fmt.Errorf("invalid query parameter: limit")
		}
		q.Limit = n
	}
	return q, nil
}
