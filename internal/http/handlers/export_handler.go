package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"faultwatch/internal/service"
)

// ExportHandler streams the stored readings as a CSV download.
type ExportHandler struct {
	service *service.ReportService
	logger  *zap.Logger
}

// NewExportHandler returns handler.
func NewExportHandler(service *service.ReportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		logger:  logger,
	}
}

// ServeHTTP handles GET /api/v1/readings/export.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="sensor_faults.csv"`)

	if err := h.service.ExportCSV(r.Context(), w); err != nil {
		// Headers may already be out; just log.
		h.logger.Error("failed to export readings", zap.Error(err))
	}
}
