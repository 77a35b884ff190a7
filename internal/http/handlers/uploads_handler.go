package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"faultwatch/internal/repository"
	"faultwatch/internal/service"
)

// UploadsHandler lists recent ingest batches.
type UploadsHandler struct {
	service *service.ReportService
	logger  *zap.Logger
}

// NewUploadsHandler returns handler.
func NewUploadsHandler(service *service.ReportService, logger *zap.Logger) *UploadsHandler {
	return &UploadsHandler{
		service: service,
		logger:  logger,
	}
}

// ServeHTTP handles GET /api/v1/uploads with an optional limit.
func (h *UploadsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid query parameter: limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	uploads, err := h.service.Uploads(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list uploads", zap.Error(err))
		http.Error(w, "failed to list uploads", http.StatusInternalServerError)
		return
	}
	if uploads == nil {
		uploads = []repository.Upload{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"count":   len(uploads),
		"uploads": uploads,
	})
}
