package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"faultwatch/internal/service"
)

// ResetHandler clears the stored readings.
type ResetHandler struct {
	service *service.ReportService
	logger  *zap.Logger
}

// NewResetHandler returns handler.
func NewResetHandler(service *service.ReportService, logger *zap.Logger) *ResetHandler {
	return &ResetHandler{
		service: service,
		logger:  logger,
	}
}

// ServeHTTP handles POST /api/v1/readings/reset.
func (h *ResetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context()); err != nil {
		h.logger.Error("failed to reset readings", zap.Error(err))
		http.Error(w, "failed to reset readings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"reset"}`))
}
