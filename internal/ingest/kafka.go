package ingest

import (
	"context"
	"log/slog"

	"github.com/McSimik/inf-search/pkg/config"
	"github.com/McSimik/inf-search/pkg/kafka"
)

// KafkaSource streams documents from a Kafka topic into the index.
// Messages are JSON-encoded Documents; malformed messages are dropped
// after logging so the consumer keeps moving.
type KafkaSource struct {
	consumer *kafka.Consumer
	logger   *slog.Logger
}

// NewKafkaSource wires a consumer on the configured document topic that
// indexes each decoded document.
func NewKafkaSource(cfg config.KafkaConfig, idx Indexer) *KafkaSource {
	logger := slog.Default().With("component", "kafka-source")
	handler := func(ctx context.Context, key, value []byte) error {
		doc, err := kafka.DecodeJSON[Document](value)
		if err != nil {
			logger.Error("dropping malformed document message", "key", string(key), "error", err)
			return nil
		}
		if doc.Empty() {
			logger.Debug("skipping empty document", "source_id", doc.SourceID)
			return nil
		}
		id := idx.AddDocument(ctx, doc.Fields())
		logger.Debug("document indexed from kafka", "source_id", doc.SourceID, "doc_id", int(id))
		return nil
	}
	return &KafkaSource{
		consumer: kafka.NewConsumer(cfg, cfg.DocumentTopic, handler),
		logger:   logger,
	}
}

// Run consumes until ctx is cancelled.
func (s *KafkaSource) Run(ctx context.Context) error {
	return s.consumer.Start(ctx)
}

// Close closes the underlying consumer.
func (s *KafkaSource) Close() error {
	return s.consumer.Close()
}
