package index

// DocID identifies one ingested document. IDs are assigned sequentially
// starting at 1 and are never reused.
type DocID int

// TermPositions is one entry of a coordinate (positional) posting list:
// a document plus the sorted, duplicate-free positions at which a term
// occurs in that document's token stream.
type TermPositions struct {
	Doc       DocID
	Positions []int
}

// InvertedIndex maps a term to its posting list: DocIDs ascending with no
// duplicates.
type InvertedIndex map[string][]DocID

// CoordinateIndex maps a term to its positional posting list, ascending by
// DocID with at most one entry per document.
type CoordinateIndex map[string][]TermPositions

// dedupDocs removes adjacent duplicates from a sorted posting list in
// place.
func dedupDocs(sorted []DocID) []DocID {
	if len(sorted) <= 1 {
		return sorted
	}
	write := 1
	for read := 1; read < len(sorted); read++ {
		if sorted[read] != sorted[read-1] {
			sorted[write] = sorted[read]
			write++
		}
	}
	return sorted[:write]
}

// dedupInts removes adjacent duplicates from a sorted position list in
// place.
func dedupInts(sorted []int) []int {
	if len(sorted) <= 1 {
		return sorted
	}
	write := 1
	for read := 1; read < len(sorted); read++ {
		if sorted[read] != sorted[read-1] {
			sorted[write] = sorted[read]
			write++
		}
	}
	return sorted[:write]
}
