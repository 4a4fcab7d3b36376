// Package repl implements the interactive search shell used by the CLI.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/McSimik/inf-search/internal/index"
	"github.com/McSimik/inf-search/internal/search"
)

const (
	maxShown       = 5
	contentPreview = 200
)

// Shell reads queries from in, executes them against the engine, and
// prints results to out.
type Shell struct {
	engine *search.Engine
	in     io.Reader
	out    io.Writer
}

// New creates a Shell bound to the given streams.
func New(engine *search.Engine, in io.Reader, out io.Writer) *Shell {
	return &Shell{engine: engine, in: in, out: out}
}

// Run enters the prompt loop. It returns when the user types "exit", the
// input stream ends, or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintf(s.out, "Total docs: %d\n", s.engine.DocCount())
	fmt.Fprintln(s.out, "Available operations: AND, NOT, OR, NEAR/k, ADJ/k, search in fields")
	fmt.Fprintln(s.out, "Type 'exit' to end")
	fmt.Fprintln(s.out)

	scanner := bufio.NewScanner(s.in)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprint(s.out, "Search request: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		query := scanner.Text()
		if query == "exit" {
			return nil
		}
		if query == "" {
			continue
		}

		start := time.Now()
		results := s.engine.ExecuteQuery(ctx, query)
		elapsed := time.Since(start)
		fmt.Fprintf(s.out, "Execution time: %d ms\n", elapsed.Milliseconds())

		s.display(results)
		fmt.Fprintf(s.out, "\n%s\n\n", strings.Repeat("=", 50))
	}
}

// display prints up to maxShown results with truncated content previews.
func (s *Shell) display(results []index.DocID) {
	if len(results) == 0 {
		fmt.Fprintln(s.out, "Nothing found.")
		return
	}

	fmt.Fprintf(s.out, "Found docs: %d\n", len(results))
	shown := len(results)
	if shown > maxShown {
		shown = maxShown
	}
	for i := 0; i < shown; i++ {
		id := results[i]
		title := s.engine.DocumentTitle(id)
		content := s.engine.DocumentContent(id)
		if title == "" {
			title = "No title"
		}
		if content == "" {
			content = "No content"
		}
		fmt.Fprintf(s.out, "[%d] %s\n", int(id), title)
		if len(content) > contentPreview {
			fmt.Fprintf(s.out, "\t%s...\n", content[:contentPreview])
		} else {
			fmt.Fprintf(s.out, "\t%s\n", content)
		}
		fmt.Fprintln(s.out)
	}
}
