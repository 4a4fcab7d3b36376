// Package index maintains the in-memory inverted and coordinate
// (positional) indexes of the search engine. Every document is indexed
// twice: once per field, and once globally over the space-joined
// concatenation of its fields. The two position spaces are independent.
// The index only grows; documents are never updated or deleted.
package index

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/McSimik/inf-search/internal/tokenizer"
)

// Recognized field names whose raw text is stored for retrieval. All other
// field names are indexed but not retrievable as text.
const (
	FieldTitle   = "title"
	FieldContent = "content"
)

// Field is one named piece of document text, in the order the caller
// supplies it.
type Field struct {
	Name string
	Text string
}

// TextIndex holds the global and per-field indexes, stored titles and
// contents, the universe of assigned DocIDs, and the skip-list overlay.
//
// A single RWMutex gives the readers-writer discipline the engine relies
// on: AddDocument holds the write lock for the whole insertion including
// post-insert normalisation, so a reader never observes a partially
// indexed document or a posting list mid-rewrite.
type TextIndex struct {
	mu sync.RWMutex

	inverted   InvertedIndex
	coordinate CoordinateIndex

	fieldInverted   map[string]InvertedIndex
	fieldCoordinate map[string]CoordinateIndex

	titles   map[DocID]string
	contents map[DocID]string

	universe []DocID
	nextDoc  DocID

	skipLists map[string]*SkipList

	logger *slog.Logger
}

// New creates an empty TextIndex.
func New() *TextIndex {
	return &TextIndex{
		inverted:        make(InvertedIndex),
		coordinate:      make(CoordinateIndex),
		fieldInverted:   make(map[string]InvertedIndex),
		fieldCoordinate: make(map[string]CoordinateIndex),
		titles:          make(map[DocID]string),
		contents:        make(map[DocID]string),
		skipLists:       make(map[string]*SkipList),
		nextDoc:         1,
		logger:          slog.Default().With("component", "text-index"),
	}
}

// AddDocument ingests one document as an ordered list of (field, text)
// pairs and returns its assigned DocID. The title and content fields are
// additionally stored for retrieval. After indexing, every posting list is
// re-sorted and de-duplicated and the skip lists are rebuilt, so all list
// invariants hold when the method returns.
func (t *TextIndex) AddDocument(fields []Field) DocID {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextDoc
	t.nextDoc++
	t.universe = append(t.universe, id)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Text)
		switch f.Name {
		case FieldTitle:
			t.titles[id] = f.Text
		case FieldContent:
			t.contents[id] = f.Text
		}
		t.indexText(id, t.fieldInvertedFor(f.Name), t.fieldCoordinateFor(f.Name), f.Text)
	}
	t.indexText(id, t.inverted, t.coordinate, strings.Join(parts, " "))

	t.normalizeIndexes()
	t.rebuildSkipLists()

	t.logger.Debug("document indexed",
		"doc_id", int(id),
		"fields", len(fields),
		"terms", len(t.inverted),
	)
	return id
}

// indexText tokenises text and merges the resulting (term, positions)
// groups into the given inverted and coordinate indexes. Positions are
// offsets in the token stream of this text only; tokens that normalise to
// the empty string still consume their position.
func (t *TextIndex) indexText(id DocID, inv InvertedIndex, coord CoordinateIndex, text string) {
	byTerm := make(map[string][]int)
	for pos, raw := range tokenizer.Tokenize(text) {
		term := tokenizer.Normalize(raw)
		if term == "" {
			continue
		}
		byTerm[term] = append(byTerm[term], pos)
	}

	for term, positions := range byTerm {
		list := inv[term]
		if !containsDoc(list, id) {
			inv[term] = append(list, id)
		}

		entries := coord[term]
		extended := false
		for i := range entries {
			if entries[i].Doc == id {
				entries[i].Positions = append(entries[i].Positions, positions...)
				extended = true
				break
			}
		}
		if !extended {
			coord[term] = append(entries, TermPositions{Doc: id, Positions: positions})
		}
	}
}

func containsDoc(list []DocID, id DocID) bool {
	for _, d := range list {
		if d == id {
			return true
		}
	}
	return false
}

func (t *TextIndex) fieldInvertedFor(name string) InvertedIndex {
	inv, ok := t.fieldInverted[name]
	if !ok {
		inv = make(InvertedIndex)
		t.fieldInverted[name] = inv
	}
	return inv
}

func (t *TextIndex) fieldCoordinateFor(name string) CoordinateIndex {
	coord, ok := t.fieldCoordinate[name]
	if !ok {
		coord = make(CoordinateIndex)
		t.fieldCoordinate[name] = coord
	}
	return coord
}

// normalizeIndexes restores sortedness and uniqueness in every posting
// list. The build path tolerates out-of-order appends; running this once
// per insertion lets the merge evaluators assume sorted input.
func (t *TextIndex) normalizeIndexes() {
	sortInverted(t.inverted)
	sortCoordinate(t.coordinate)
	for _, inv := range t.fieldInverted {
		sortInverted(inv)
	}
	for _, coord := range t.fieldCoordinate {
		sortCoordinate(coord)
	}
}

func sortInverted(inv InvertedIndex) {
	for term, list := range inv {
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
		inv[term] = dedupDocs(list)
	}
}

func sortCoordinate(coord CoordinateIndex) {
	for term, entries := range coord {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Doc < entries[j].Doc })
		for i := range entries {
			sort.Ints(entries[i].Positions)
			entries[i].Positions = dedupInts(entries[i].Positions)
		}
		coord[term] = entries
	}
}

// rebuildSkipLists discards and rebuilds the skip-list overlay from the
// global inverted index.
func (t *TextIndex) rebuildSkipLists() {
	t.skipLists = make(map[string]*SkipList, len(t.inverted))
	for term, list := range t.inverted {
		if len(list) == 0 {
			continue
		}
		t.skipLists[term] = BuildSkipList(list)
	}
}

// Postings returns the inverted posting list for term in the given scope.
// An empty field selects the global index; an unknown field or term yields
// nil. The list is copied under the read lock: AddDocument re-sorts the
// backing arrays in place, so handing out the live slice would race with
// concurrent insertions.
func (t *TextIndex) Postings(field, term string) []DocID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if field == "" {
		return copyDocs(t.inverted[term])
	}
	inv, ok := t.fieldInverted[field]
	if !ok {
		return nil
	}
	return copyDocs(inv[term])
}

// Positions returns the coordinate posting list for term in the given
// scope, with the same conventions as Postings. Entries and their position
// lists are copied under the read lock.
func (t *TextIndex) Positions(field, term string) []TermPositions {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if field == "" {
		return copyPositions(t.coordinate[term])
	}
	coord, ok := t.fieldCoordinate[field]
	if !ok {
		return nil
	}
	return copyPositions(coord[term])
}

// Universe returns a copy of every assigned DocID in ascending order.
func (t *TextIndex) Universe() []DocID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return copyDocs(t.universe)
}

func copyDocs(list []DocID) []DocID {
	if list == nil {
		return nil
	}
	out := make([]DocID, len(list))
	copy(out, list)
	return out
}

func copyPositions(entries []TermPositions) []TermPositions {
	if entries == nil {
		return nil
	}
	out := make([]TermPositions, len(entries))
	for i, e := range entries {
		positions := make([]int, len(e.Positions))
		copy(positions, e.Positions)
		out[i] = TermPositions{Doc: e.Doc, Positions: positions}
	}
	return out
}

// SkipList returns the skip list built over the global posting list of
// term, or nil when the term is unknown. Rebuilds allocate fresh lists
// and never touch previously returned ones, so the result is safe to read
// without the lock.
func (t *TextIndex) SkipList(term string) *SkipList {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.skipLists[term]
}

// DocumentTitle returns the stored title of id, or the placeholder
// "Document <id>" when no title field was supplied.
func (t *TextIndex) DocumentTitle(id DocID) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if title, ok := t.titles[id]; ok {
		return title
	}
	return fmt.Sprintf("Document %d", int(id))
}

// DocumentContent returns the stored content of id, or "" when no content
// field was supplied.
func (t *TextIndex) DocumentContent(id DocID) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.contents[id]
}

// DocCount returns the number of ingested documents.
func (t *TextIndex) DocCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.universe)
}

// TermCount returns the number of distinct terms in the global index.
func (t *TextIndex) TermCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.inverted)
}

// HasDocument reports whether id has been assigned.
func (t *TextIndex) HasDocument(id DocID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return id >= 1 && id < t.nextDoc
}
