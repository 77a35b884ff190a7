// Package events publishes fault alerts to Kafka for downstream
// consumers (pagers, long-term analytics). Publishing is best-effort:
// a broker outage never fails an ingest.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"faultwatch/internal/models"
)

// Alert is the wire payload for one critical reading.
type Alert struct {
	UploadID  string  `json:"upload_id"`
	Timestamp string  `json:"timestamp"`
	Sensor    string  `json:"sensor"`
	Value     float64 `json:"value"`
	FaultType string  `json:"fault_type"`
	Severity  string  `json:"severity"`
}

// AlertPublisher writes Critical-severity readings to an alerts topic.
type AlertPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewAlertPublisher builds a Kafka writer for the alerts topic.
func NewAlertPublisher(brokers []string, topic string, logger *zap.Logger) *AlertPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		BatchTimeout: 200 * time.Millisecond,
	}
	return &AlertPublisher{writer: writer, logger: logger}
}

// PublishCriticals emits one message per Critical reading in the batch,
// keyed by sensor so a sensor's alerts stay ordered per partition.
func (p *AlertPublisher) PublishCriticals(ctx context.Context, uploadID string, records []models.ClassifiedRecord) {
	var messages []kafka.Message
	for _, rec := range records {
		if rec.Severity != models.SeverityCritical {
			continue
		}
		payload, err := json.Marshal(Alert{
			UploadID:  uploadID,
			Timestamp: rec.Timestamp,
			Sensor:    rec.Sensor,
			Value:     rec.Value,
			FaultType: string(rec.FaultType),
			Severity:  string(rec.Severity),
		})
		if err != nil {
			p.logger.Error("failed to encode alert", zap.Error(err))
			continue
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(rec.Sensor),
			Value: payload,
		})
	}
	if len(messages) == 0 {
		return
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		p.logger.Error("failed to publish alerts",
			zap.Int("count", len(messages)),
			zap.Error(err))
		return
	}
	p.logger.Info("published critical alerts",
		zap.String("upload_id", uploadID),
		zap.Int("count", len(messages)))
}

// Close flushes and closes the writer.
func (p *AlertPublisher) Close() error {
	return p.writer.Close()
}
