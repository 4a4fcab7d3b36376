package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"document not found", ErrDocumentNotFound, http.StatusNotFound},
		{"invalid query", ErrInvalidQuery, http.StatusBadRequest},
		{"wrapped invalid query", fmt.Errorf("parsing: %w", ErrInvalidQuery), http.StatusBadRequest},
		{"source unavailable", ErrSourceUnavailable, http.StatusServiceUnavailable},
		{"cache unavailable", ErrCacheUnavailable, http.StatusServiceUnavailable},
		{"timeout", ErrTimeout, http.StatusServiceUnavailable},
		{"internal", ErrInternal, http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"app error carries its own status", New(ErrInternal, http.StatusTeapot, "odd"), http.StatusTeapot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusCode(tt.err); got != tt.want {
				t.Errorf("HTTPStatusCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	appErr := Newf(ErrDocumentNotFound, http.StatusNotFound, "document %d", 7)
	if !errors.Is(appErr, ErrDocumentNotFound) {
		t.Error("AppError must unwrap to its sentinel")
	}
	if got := appErr.Error(); got != "document not found: document 7" {
		t.Errorf("Error() = %q", got)
	}
}
