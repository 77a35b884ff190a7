package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"faultwatch/internal/ingest"
	"faultwatch/internal/models"
	"faultwatch/internal/pipeline"
	"faultwatch/internal/report"
	"faultwatch/internal/repository"
	"faultwatch/internal/ws"
)

// ErrNoSensorColumns reports an upload whose rows carry no sensor
// columns at all; persisting an empty batch is never what the caller
// meant.
var ErrNoSensorColumns = errors.New("input contains no sensor columns")

// AlertSink publishes critical readings after a committed batch.
type AlertSink interface {
	PublishCriticals(ctx context.Context, uploadID string, records []models.ClassifiedRecord)
}

// SummaryInvalidator drops any cached summary after a write.
type SummaryInvalidator interface {
	Invalidate(ctx context.Context) error
}

// IngestResult summarizes one accepted upload.
type IngestResult struct {
	UploadID  uuid.UUID `json:"upload_id"`
	Rows      int       `json:"rows"`
	Criticals int       `json:"criticals"`
}

// IngestService runs the upload path: parse, reshape, classify, persist
// in one transaction, then notify collaborators.
type IngestService struct {
	readings *repository.ReadingRepository
	uploads  *repository.UploadRepository
	cache    SummaryInvalidator // optional
	alerts   AlertSink          // optional
	hub      *ws.Hub            // optional
	logger   *zap.Logger
}

// NewIngestService returns service instance. cache, alerts, and hub may
// be nil when the respective collaborator is not configured.
func NewIngestService(
	readings *repository.ReadingRepository,
	uploads *repository.UploadRepository,
	cache SummaryInvalidator,
	alerts AlertSink,
	hub *ws.Hub,
	logger *zap.Logger,
) *IngestService {
	return &IngestService{
		readings: readings,
		uploads:  uploads,
		cache:    cache,
		alerts:   alerts,
		hub:      hub,
		logger:   logger,
	}
}

// IngestCSV processes one uploaded wide table. Schema errors and
// classification errors surface unwrapped enough for errors.Is; nothing
// is committed unless the whole batch classified.
func (s *IngestService) IngestCSV(ctx context.Context, filename string, r io.Reader) (IngestResult, error) {
	wide, err := ingest.ParseWideCSV(r)
	if err != nil {
		return IngestResult{}, err
	}

	long := pipeline.Reshape(wide)
	if len(long) == 0 {
		return IngestResult{}, ErrNoSensorColumns
	}

	classified, err := pipeline.Classify(long)
	if err != nil {
		return IngestResult{}, err
	}

	upload := repository.Upload{
		ID:         uuid.New(),
		Filename:   filename,
		RowCount:   len(classified),
		ReceivedAt: time.Now().UTC(),
	}

	tx, err := s.readings.BeginTx(ctx)
	if err != nil {
		return IngestResult{}, fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback()

	if err := s.readings.InsertBatch(ctx, tx, classified); err != nil {
		return IngestResult{}, err
	}
	if err := s.uploads.Insert(ctx, tx, upload); err != nil {
		return IngestResult{}, fmt.Errorf("record upload: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return IngestResult{}, fmt.Errorf("commit batch: %w", err)
	}

	result := IngestResult{UploadID: upload.ID, Rows: len(classified)}
	var criticals []models.ClassifiedRecord
	for _, rec := range classified {
		if rec.Severity == models.SeverityCritical {
			criticals = append(criticals, rec)
		}
	}
	result.Criticals = len(criticals)

	s.logger.Info("batch ingested",
		zap.String("upload_id", upload.ID.String()),
		zap.String("filename", filename),
		zap.Int("rows", result.Rows),
		zap.Int("criticals", result.Criticals))

	s.afterCommit(ctx, upload, classified, criticals)
	return result, nil
}

// afterCommit fans the committed batch out to the optional
// collaborators. None of them can fail the ingest.
func (s *IngestService) afterCommit(ctx context.Context, upload repository.Upload, classified, criticals []models.ClassifiedRecord) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("failed to invalidate summary cache", zap.Error(err))
		}
	}
	if s.hub != nil {
		s.hub.Broadcast(ws.BatchEvent{
			UploadID:  upload.ID.String(),
			Filename:  upload.Filename,
			Rows:      upload.RowCount,
			Summary:   report.BuildSummary(classified),
			Criticals: criticals,
		})
	}
	if s.alerts != nil && len(criticals) > 0 {
		s.alerts.PublishCriticals(ctx, upload.ID.String(), classified)
	}
}
