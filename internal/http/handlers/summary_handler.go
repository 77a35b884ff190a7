package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"faultwatch/internal/service"
)

// SummaryHandler serves the dashboard aggregation.
type SummaryHandler struct {
	service *service.ReportService
	logger  *zap.Logger
}

// NewSummaryHandler returns handler.
func NewSummaryHandler(service *service.ReportService, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{
		service: service,
		logger:  logger,
	}
}

// ServeHTTP handles GET /api/v1/readings/summary.
func (h *SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.Error("failed to build summary", zap.Error(err))
		http.Error(w, "failed to build summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
}
