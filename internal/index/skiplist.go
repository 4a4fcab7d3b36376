package index

import "math"

// NoNode marks the absence of a successor or skip target.
const NoNode = -1

// SkipList is a singly linked chain over one global posting list with
// sqrt-spaced skip pointers. Nodes live in a flat arena and reference each
// other by index; the structure is immutable between rebuilds, so integer
// handles replace pointer chains entirely.
//
// The evaluators currently merge on the raw posting vectors; the skip
// lists exist as the acceleration structure for sub-linear intersection.
type SkipList struct {
	nodes []skipNode
}

type skipNode struct {
	doc  DocID
	next int
	skip int
}

// BuildSkipList builds the chain for a sorted posting list. Lists shorter
// than three documents get no skip pointers; otherwise every node at an
// index divisible by floor(sqrt(n)) skips floor(sqrt(n)) hops forward.
func BuildSkipList(docs []DocID) *SkipList {
	nodes := make([]skipNode, len(docs))
	for i, d := range docs {
		next := i + 1
		if next == len(docs) {
			next = NoNode
		}
		nodes[i] = skipNode{doc: d, next: next, skip: NoNode}
	}
	s := &SkipList{nodes: nodes}
	s.addSkipPointers()
	return s
}

func (s *SkipList) addSkipPointers() {
	n := len(s.nodes)
	if n < 3 {
		return
	}
	step := int(math.Sqrt(float64(n)))
	for i := 0; i < n; i++ {
		if i%step != 0 {
			continue
		}
		target := i + step
		if target >= n {
			target = NoNode
		}
		s.nodes[i].skip = target
	}
}

// Len returns the number of nodes.
func (s *SkipList) Len() int { return len(s.nodes) }

// Head returns the handle of the first node, or NoNode for an empty list.
func (s *SkipList) Head() int {
	if len(s.nodes) == 0 {
		return NoNode
	}
	return 0
}

// Doc returns the DocID stored at handle i.
func (s *SkipList) Doc(i int) DocID { return s.nodes[i].doc }

// Next returns the successor handle of node i, or NoNode at the tail.
func (s *SkipList) Next(i int) int { return s.nodes[i].next }

// Skip returns the skip target handle of node i, or NoNode when the node
// has no skip pointer.
func (s *SkipList) Skip(i int) int { return s.nodes[i].skip }
