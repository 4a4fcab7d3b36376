// Package search evaluates parsed queries against the text index and
// fronts the engine API: document ingestion, query execution, and
// stored-field retrieval. Queries are total functions over their input:
// ill-formed syntax and unknown terms degrade to empty results.
package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/McSimik/inf-search/internal/index"
	"github.com/McSimik/inf-search/internal/query"
	"github.com/McSimik/inf-search/pkg/metrics"
)

// Engine ties the text index to the query pipeline. The cache and metrics
// collaborators are optional; a nil value disables them.
type Engine struct {
	idx     *index.TextIndex
	cache   *QueryCache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewEngine creates an Engine over idx. queryCache and m may be nil.
func NewEngine(idx *index.TextIndex, queryCache *QueryCache, m *metrics.Metrics) *Engine {
	return &Engine{
		idx:     idx,
		cache:   queryCache,
		metrics: m,
		logger:  slog.Default().With("component", "search-engine"),
	}
}

// AddDocument indexes one document and returns its DocID. Cached query
// results are invalidated since any of them may now be stale.
func (e *Engine) AddDocument(ctx context.Context, fields []index.Field) index.DocID {
	id := e.idx.AddDocument(fields)
	if e.metrics != nil {
		e.metrics.DocsIndexedTotal.Inc()
		e.metrics.IndexedTerms.Set(float64(e.idx.TermCount()))
	}
	if e.cache != nil {
		if err := e.cache.Invalidate(ctx); err != nil {
			e.logger.Error("cache invalidation failed", "doc_id", int(id), "error", err)
		}
	}
	return id
}

// ExecuteQuery parses and evaluates a boolean query, returning the
// matching DocIDs in ascending order. The empty query yields the empty
// result; query content never causes an error.
func (e *Engine) ExecuteQuery(ctx context.Context, rawQuery string) []index.DocID {
	start := time.Now()

	cacheStatus := "bypass"
	var results []index.DocID
	if e.cache != nil {
		var hit bool
		results, hit = e.cache.GetOrCompute(ctx, rawQuery, func() []index.DocID {
			return e.run(rawQuery)
		})
		cacheStatus = "miss"
		if hit {
			cacheStatus = "hit"
		}
	} else {
		results = e.run(rawQuery)
	}

	elapsed := time.Since(start)
	if e.metrics != nil {
		switch cacheStatus {
		case "hit":
			e.metrics.CacheHitsTotal.Inc()
		case "miss":
			e.metrics.CacheMissesTotal.Inc()
		}
		e.metrics.QueryLatency.WithLabelValues(cacheStatus).Observe(elapsed.Seconds())
		e.metrics.QueryResultsCount.Observe(float64(len(results)))
		resultType := "hit"
		if len(results) == 0 {
			resultType = "zero_result"
		}
		e.metrics.QueriesTotal.WithLabelValues(resultType).Inc()
	}
	e.logger.Info("query executed",
		"query", rawQuery,
		"results", len(results),
		"cache", cacheStatus,
		"elapsed", elapsed,
	)
	return results
}

func (e *Engine) run(rawQuery string) []index.DocID {
	ast := query.NewParser(rawQuery).Parse()
	if ast == nil {
		return nil
	}
	return e.evaluate(ast)
}

// DocumentTitle returns the stored title of id, or the "Document <id>"
// placeholder.
func (e *Engine) DocumentTitle(id index.DocID) string {
	return e.idx.DocumentTitle(id)
}

// DocumentContent returns the stored content of id, or "".
func (e *Engine) DocumentContent(id index.DocID) string {
	return e.idx.DocumentContent(id)
}

// DocCount returns the number of ingested documents.
func (e *Engine) DocCount() int {
	return e.idx.DocCount()
}

// HasDocument reports whether id has been assigned.
func (e *Engine) HasDocument(id index.DocID) bool {
	return e.idx.HasDocument(id)
}
