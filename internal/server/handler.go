// Package server exposes the search engine over HTTP: query execution,
// document ingestion, stored-field retrieval, cache administration, and
// health probes.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/McSimik/inf-search/internal/index"
	"github.com/McSimik/inf-search/internal/ingest"
	"github.com/McSimik/inf-search/internal/search"
	apperrors "github.com/McSimik/inf-search/pkg/errors"
	"github.com/McSimik/inf-search/pkg/logger"
)

// Handler serves the search API.
type Handler struct {
	engine       *search.Engine
	cache        *search.QueryCache
	defaultLimit int
	maxResults   int
	logger       *slog.Logger
}

// New creates a Handler. queryCache may be nil when caching is disabled.
func New(engine *search.Engine, queryCache *search.QueryCache, defaultLimit, maxResults int) *Handler {
	return &Handler{
		engine:       engine,
		cache:        queryCache,
		defaultLimit: defaultLimit,
		maxResults:   maxResults,
		logger:       slog.Default().With("component", "search-handler"),
	}
}

// SearchResult is one matched document in a search response.
type SearchResult struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Query     string         `json:"query"`
	TotalHits int            `json:"total_hits"`
	Results   []SearchResult `json:"results"`
	LatencyMs int64          `json:"latency_ms"`
}

// Search handles GET /api/v1/search?q=...&limit=N.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, apperrors.HTTPStatusCode(apperrors.ErrInvalidQuery), "query parameter 'q' is required")
		return
	}

	limit := h.defaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.writeError(w, apperrors.HTTPStatusCode(apperrors.ErrInvalidQuery), "limit must be a positive integer")
			return
		}
		if parsed > h.maxResults {
			parsed = h.maxResults
		}
		limit = parsed
	}

	matches := h.engine.ExecuteQuery(ctx, query)

	results := make([]SearchResult, 0, limit)
	for _, id := range matches {
		if len(results) == limit {
			break
		}
		results = append(results, SearchResult{
			ID:    int(id),
			Title: h.engine.DocumentTitle(id),
		})
	}

	latencyMs := time.Since(start).Milliseconds()
	log.Info("search completed",
		"query", query,
		"total_hits", len(matches),
		"returned", len(results),
		"latency_ms", latencyMs,
	)

	h.writeJSON(w, http.StatusOK, SearchResponse{
		Query:     query,
		TotalHits: len(matches),
		Results:   results,
		LatencyMs: latencyMs,
	})
}

// AddDocument handles POST /api/v1/documents with an ingest.Document
// body.
func (h *Handler) AddDocument(w http.ResponseWriter, r *http.Request) {
	var doc ingest.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if doc.Empty() {
		h.writeError(w, http.StatusBadRequest, "document needs a title or content")
		return
	}

	id := h.engine.AddDocument(r.Context(), doc.Fields())
	h.logger.Info("document ingested", "doc_id", int(id), "source_id", doc.SourceID)
	h.writeJSON(w, http.StatusCreated, map[string]int{"doc_id": int(id)})
}

// DocumentResponse is the body of a document lookup.
type DocumentResponse struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// GetDocument handles GET /api/v1/documents/{id}.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		h.writeError(w, http.StatusBadRequest, "document id must be a positive integer")
		return
	}
	docID := index.DocID(id)
	if !h.engine.HasDocument(docID) {
		appErr := apperrors.Newf(apperrors.ErrDocumentNotFound, http.StatusNotFound, "document %d", id)
		h.writeError(w, apperrors.HTTPStatusCode(appErr), appErr.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, DocumentResponse{
		ID:      id,
		Title:   h.engine.DocumentTitle(docID),
		Content: h.engine.DocumentContent(docID),
	})
}

// CacheStats handles GET /api/v1/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": strconv.FormatFloat(hitRate, 'f', 1, 64) + "%",
	})
}

// CacheInvalidate handles POST /api/v1/cache/invalidate.
func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}
	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, apperrors.HTTPStatusCode(apperrors.ErrCacheUnavailable), "cache invalidation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
