package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"faultwatch/internal/ingest"
	"faultwatch/internal/pipeline"
	"faultwatch/internal/service"
)

const maxUploadBytes = 32 << 20

// UploadHandler accepts wide CSV tables and runs the ingest pipeline.
type UploadHandler struct {
	service *service.IngestService
	logger  *zap.Logger
}

// NewUploadHandler returns handler.
func NewUploadHandler(service *service.IngestService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		logger:  logger,
	}
}

// ServeHTTP handles POST /api/v1/readings/upload. The CSV comes either
// as a multipart "file" field or as the raw request body.
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	body, filename, err := uploadBody(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer body.Close()

	result, err := h.service.IngestCSV(r.Context(), filename, body)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrEmptyInput),
			errors.Is(err, ingest.ErrNoTimestamp),
			errors.Is(err, service.ErrNoSensorColumns):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, pipeline.ErrValueNotNumeric):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			h.logger.Error("failed to ingest upload",
				zap.String("filename", filename),
				zap.Error(err))
			http.Error(w, "failed to ingest upload", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(result)
}

// uploadBody extracts the CSV stream and a display filename.
func uploadBody(r *http.Request) (io.ReadCloser, string, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.Body, "upload.csv", nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, "", errors.New("invalid multipart form")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", errors.New("multipart field 'file' is required")
	}
	return file, header.Filename, nil
}
