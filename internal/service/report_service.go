package service

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"faultwatch/internal/models"
	"faultwatch/internal/report"
	"faultwatch/internal/repository"
)

// SummaryCache caches computed summaries between writes.
type SummaryCache interface {
	Get(ctx context.Context) (report.Summary, bool, error)
	Set(ctx context.Context, summary report.Summary) error
	Invalidate(ctx context.Context) error
}

// RecordQuery narrows the readings listing.
type RecordQuery struct {
	Sensor string
	From   time.Time
	To     time.Time
	Limit  int
}

// ReportService serves the read-only dashboard views.
type ReportService struct {
	readings *repository.ReadingRepository
	uploads  *repository.UploadRepository
	cache    SummaryCache // optional
	logger   *zap.Logger
}

// NewReportService returns service instance. cache may be nil.
func NewReportService(
	readings *repository.ReadingRepository,
	uploads *repository.UploadRepository,
	cache SummaryCache,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		readings: readings,
		uploads:  uploads,
		cache:    cache,
		logger:   logger,
	}
}

// Records lists stored readings. Sensor and limit filter in the
// database; the date range filters on parsed timestamps.
func (s *ReportService) Records(ctx context.Context, q RecordQuery) ([]models.ClassifiedRecord, error) {
	records, err := s.readings.FetchRange(ctx, repository.ReadingFilter{
		Sensor: q.Sensor,
		Limit:  q.Limit,
	})
	if err != nil {
		return nil, err
	}
	if q.From.IsZero() && q.To.IsZero() {
		return records, nil
	}
	return report.FilterByDateRange(records, q.From, q.To), nil
}

// Summary builds the dashboard summary over the whole table, serving
// from cache when possible.
func (s *ReportService) Summary(ctx context.Context) (report.Summary, error) {
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx); err != nil {
			s.logger.Warn("summary cache read failed", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	records, err := s.readings.FetchAll(ctx)
	if err != nil {
		return report.Summary{}, err
	}
	summary := report.BuildSummary(records)

	if s.cache != nil {
		if err := s.cache.Set(ctx, summary); err != nil {
			s.logger.Warn("summary cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}

// ExportCSV streams every stored reading as CSV.
func (s *ReportService) ExportCSV(ctx context.Context, w io.Writer) error {
	records, err := s.readings.FetchAll(ctx)
	if err != nil {
		return err
	}
	return report.WriteCSV(w, records)
}

// Uploads lists recent ingest batches.
func (s *ReportService) Uploads(ctx context.Context, limit int) ([]repository.Upload, error) {
	return s.uploads.List(ctx, limit)
}

// Reset clears all stored readings and drops the cached summary.
func (s *ReportService) Reset(ctx context.Context) error {
	if err := s.readings.Reset(ctx); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("failed to invalidate summary cache", zap.Error(err))
		}
	}
	s.logger.Info("sensor data reset")
	return nil
}
