// Package ingest loads documents into the search engine from external
// sources: CSV files, Kafka topics, and Postgres tables. Every source
// produces the same Document shape and feeds the same Indexer.
package ingest

import (
	"context"

	"github.com/McSimik/inf-search/internal/index"
)

// Document is a raw document before indexing. SourceID is the upstream
// identifier; the engine assigns its own DocID on insertion.
type Document struct {
	SourceID string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// Empty reports whether the document carries no indexable text.
func (d Document) Empty() bool {
	return d.Title == "" && d.Content == ""
}

// Fields converts the document into the field list the index ingests.
func (d Document) Fields() []index.Field {
	return []index.Field{
		{Name: index.FieldTitle, Text: d.Title},
		{Name: index.FieldContent, Text: d.Content},
	}
}

// Indexer accepts documents for indexing. *search.Engine satisfies it.
type Indexer interface {
	AddDocument(ctx context.Context, fields []index.Field) index.DocID
}
