package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/solar-flare-service/internal/config"
	"github.com/couchcryptid/solar-flare-service/internal/domain"
)

// Writer publishes applied flare selections to a Kafka topic.
// It implements viewer.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured selection topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishSelection serializes a selection and writes it keyed by flare ID,
// so successive selections of the same flare land on one partition.
func (w *Writer) PublishSelection(ctx context.Context, sel domain.Selection) error {
	msg, err := serializeToMessage(sel)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write selection: %w", err)
	}
	w.logger.Debug("selection published", "fetch_id", sel.FetchID, "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Selection into a Kafka message. Selections
// without a flare are keyed by their fetch ID.
func serializeToMessage(sel domain.Selection) (kafkago.Message, error) {
	data, err := json.Marshal(sel)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize selection: %w", err)
	}

	key := sel.FetchID
	classType := ""
	if sel.HasFlare() {
		key = sel.Flare.ID
		classType = sel.Flare.ClassType
	}

	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "fetch_id", Value: []byte(sel.FetchID)},
			{Key: "class_type", Value: []byte(classType)},
			{Key: "selected_at", Value: []byte(sel.SelectedAt.Format(time.RFC3339))},
		},
	}, nil
}
