package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/McSimik/inf-search/pkg/postgres"
)

// PostgresSource bulk-loads documents from a Postgres table with id,
// title, and content columns.
type PostgresSource struct {
	client *postgres.Client
	table  string
	logger *slog.Logger
}

// NewPostgresSource creates a source over an established client.
func NewPostgresSource(client *postgres.Client, table string) *PostgresSource {
	return &PostgresSource{
		client: client,
		table:  table,
		logger: slog.Default().With("component", "postgres-source", "table", table),
	}
}

// LoadInto reads every row in id order and indexes it, returning the
// count indexed. Rows with neither title nor content are skipped.
func (s *PostgresSource) LoadInto(ctx context.Context, idx Indexer) (int, error) {
	query := fmt.Sprintf(
		"SELECT id, COALESCE(title, ''), COALESCE(content, '') FROM %s ORDER BY id",
		pq.QuoteIdentifier(s.table),
	)
	rows, err := s.client.DB.QueryContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("querying documents table: %w", err)
	}
	defer rows.Close()

	indexed := 0
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.SourceID, &doc.Title, &doc.Content); err != nil {
			return indexed, fmt.Errorf("scanning document row: %w", err)
		}
		if doc.Empty() {
			continue
		}
		idx.AddDocument(ctx, doc.Fields())
		indexed++
	}
	if err := rows.Err(); err != nil {
		return indexed, fmt.Errorf("iterating document rows: %w", err)
	}
	s.logger.Info("postgres documents loaded", "indexed", indexed)
	return indexed, nil
}
