package search

import (
	"sort"

	"github.com/McSimik/inf-search/internal/index"
	"github.com/McSimik/inf-search/internal/query"
	"github.com/McSimik/inf-search/internal/tokenizer"
)

// evaluate walks the AST recursively. Every node yields a strictly
// ascending, duplicate-free DocID vector; a nil node yields nothing, so
// ill-formed subtrees degrade to empty results rather than failing.
func (e *Engine) evaluate(node *query.Node) []index.DocID {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case query.KindTerm:
		return e.idx.Postings(node.Field, tokenizer.Normalize(node.Value))
	case query.KindAnd:
		return intersect(e.evaluate(node.Left), e.evaluate(node.Right))
	case query.KindOr:
		return union(e.evaluate(node.Left), e.evaluate(node.Right))
	case query.KindNot:
		return complement(e.idx.Universe(), e.evaluate(node.Left))
	case query.KindNear:
		return e.proximity(node, false)
	case query.KindAdj:
		return e.proximity(node, true)
	}
	return nil
}

// intersect merges two sorted posting lists with a two-pointer walk in
// O(n+m).
func intersect(a, b []index.DocID) []index.DocID {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	result := make([]index.DocID, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			result = append(result, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return result
}

// union merges two sorted posting lists, emitting equal ids once.
func union(a, b []index.DocID) []index.DocID {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	result := make([]index.DocID, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			result = append(result, a[i])
			i++
		case a[i] > b[j]:
			result = append(result, b[j])
			j++
		default:
			result = append(result, a[i])
			i++
			j++
		}
	}
	result = append(result, a[i:]...)
	result = append(result, b[j:]...)
	return result
}

// complement walks the universe in ascending order and emits every id not
// present in docs, using binary search for membership.
func complement(universe, docs []index.DocID) []index.DocID {
	result := make([]index.DocID, 0, len(universe))
	for _, id := range universe {
		if !containsSorted(docs, id) {
			result = append(result, id)
		}
	}
	return result
}

func containsSorted(sorted []index.DocID, id index.DocID) bool {
	i := sort.Search(len(sorted), func(k int) bool { return sorted[k] >= id })
	return i < len(sorted) && sorted[i] == id
}

// proximity evaluates a NEAR or ADJ node. Each operand's positional list
// is looked up in the scope named by its own field, so the two operands
// may come from different per-field position spaces. Documents align via
// a two-pointer walk; the position-level predicate decides the match.
func (e *Engine) proximity(node *query.Node, directed bool) []index.DocID {
	if node.Left == nil || node.Right == nil {
		return nil
	}
	left := e.idx.Positions(node.Left.Field, tokenizer.Normalize(node.Left.Value))
	right := e.idx.Positions(node.Right.Field, tokenizer.Normalize(node.Right.Value))
	if len(left) == 0 || len(right) == 0 {
		return nil
	}

	var result []index.DocID
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		switch {
		case left[i].Doc == right[j].Doc:
			matched := false
			if directed {
				matched = hasAdjacentPositions(left[i].Positions, right[j].Positions, node.Distance)
			} else {
				matched = hasClosePositions(left[i].Positions, right[j].Positions, node.Distance)
			}
			if matched {
				result = append(result, left[i].Doc)
			}
			i++
			j++
		case left[i].Doc < right[j].Doc:
			i++
		default:
			j++
		}
	}
	return result
}

// hasClosePositions reports whether any pair of positions lies within
// maxDistance of each other. Both inputs are sorted ascending; the walk
// advances the smaller position each step.
func hasClosePositions(a, b []int, maxDistance int) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		d := a[i] - b[j]
		if d < 0 {
			d = -d
		}
		if d <= maxDistance {
			return true
		}
		if a[i] < b[j] {
			i++
		} else {
			j++
		}
	}
	return false
}

// hasAdjacentPositions reports whether some occurrence of the second term
// follows the first within maxDistance positions. Direction matters: a
// second-term occurrence before the first never qualifies.
func hasAdjacentPositions(a, b []int, maxDistance int) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		d := b[j] - a[i]
		if d > 0 && d <= maxDistance {
			return true
		}
		if a[i] < b[j] {
			i++
		} else {
			j++
		}
	}
	return false
}
