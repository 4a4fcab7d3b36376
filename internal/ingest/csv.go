package ingest

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// CSVLoader reads documents from a CSV file. The format is deliberately
// lenient: a double quote toggles quoted mode and is dropped from the
// field, so unbalanced quotes never fail a row. Only the id, title, and
// content columns are used; other columns are ignored.
type CSVLoader struct {
	Path      string
	MaxRows   int
	Separator byte
	logger    *slog.Logger
}

// NewCSVLoader creates a loader for path. maxRows caps the number of data
// rows read after the header.
func NewCSVLoader(path string, maxRows int, sep byte) *CSVLoader {
	if sep == 0 {
		sep = ','
	}
	return &CSVLoader{
		Path:      path,
		MaxRows:   maxRows,
		Separator: sep,
		logger:    slog.Default().With("component", "csv-loader"),
	}
}

// Load parses the file into documents. Empty rows and documents with no
// title or content are skipped.
func (l *CSVLoader) Load() ([]Document, error) {
	file, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("opening csv file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var headers []string
	lineNumber := 0
	if scanner.Scan() {
		lineNumber++
		for _, h := range strings.Split(scanner.Text(), string(l.Separator)) {
			headers = append(headers, cleanField(h))
		}
	}

	var documents []Document
	rowsLoaded := 0
	for scanner.Scan() && rowsLoaded < l.MaxRows {
		lineNumber++
		rowsLoaded++

		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := splitFields(line, l.Separator)
		doc := l.buildDocument(headers, fields, lineNumber)
		if doc.Empty() {
			continue
		}
		documents = append(documents, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading csv file: %w", err)
	}

	l.logger.Info("csv loaded", "path", l.Path, "documents", len(documents))
	return documents, nil
}

// LoadInto loads the file and feeds every document to the indexer,
// returning the count indexed.
func (l *CSVLoader) LoadInto(ctx context.Context, idx Indexer) (int, error) {
	documents, err := l.Load()
	if err != nil {
		return 0, err
	}
	indexed := 0
	for _, doc := range documents {
		idx.AddDocument(ctx, doc.Fields())
		indexed++
		if indexed%100 == 0 {
			l.logger.Debug("indexing progress", "indexed", indexed)
		}
	}
	return indexed, nil
}

func (l *CSVLoader) buildDocument(headers, fields []string, lineNumber int) Document {
	var doc Document
	n := len(headers)
	if len(fields) < n {
		n = len(fields)
	}
	for i := 0; i < n; i++ {
		value := cleanField(fields[i])
		switch headers[i] {
		case "id":
			// An unparseable id falls back to the file line number.
			if _, err := strconv.Atoi(value); err != nil {
				value = strconv.Itoa(lineNumber)
			}
			doc.SourceID = value
		case "title":
			doc.Title = value
		case "content":
			doc.Content = value
		}
	}
	return doc
}

// splitFields splits a row on sep outside quoted runs. Quote characters
// toggle quoted mode and never reach the output.
func splitFields(line string, sep byte) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '"':
			inQuotes = !inQuotes
		case c == sep && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	fields = append(fields, current.String())
	return fields
}

// cleanField trims surrounding spaces and tabs, then strips one pair of
// surrounding quotes if present.
func cleanField(s string) string {
	s = strings.Trim(s, " \t")
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return s
}
