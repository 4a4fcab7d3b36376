package index

import (
	"math"
	"testing"
)

func docRange(n int) []DocID {
	docs := make([]DocID, n)
	for i := range docs {
		docs[i] = DocID(i + 1)
	}
	return docs
}

func TestBuildSkipListChain(t *testing.T) {
	docs := []DocID{3, 7, 12, 19, 25}
	sl := BuildSkipList(docs)

	if sl.Len() != len(docs) {
		t.Fatalf("Len() = %d, want %d", sl.Len(), len(docs))
	}
	i := 0
	for h := sl.Head(); h != NoNode; h = sl.Next(h) {
		if sl.Doc(h) != docs[i] {
			t.Errorf("node %d holds %d, want %d", i, sl.Doc(h), docs[i])
		}
		i++
	}
	if i != len(docs) {
		t.Errorf("chain visited %d nodes, want %d", i, len(docs))
	}
}

func TestShortListsHaveNoSkipPointers(t *testing.T) {
	for n := 0; n < 3; n++ {
		sl := BuildSkipList(docRange(n))
		for h := sl.Head(); h != NoNode; h = sl.Next(h) {
			if sl.Skip(h) != NoNode {
				t.Errorf("n=%d: node %d has skip pointer", n, h)
			}
		}
	}
}

func TestSkipPointerShape(t *testing.T) {
	for _, n := range []int{3, 4, 9, 10, 16, 17, 100} {
		sl := BuildSkipList(docRange(n))
		step := int(math.Sqrt(float64(n)))
		for i := 0; i < n; i++ {
			want := NoNode
			if i%step == 0 && i+step < n {
				want = i + step
			}
			if got := sl.Skip(i); got != want {
				t.Errorf("n=%d step=%d: Skip(%d) = %d, want %d", n, step, i, got, want)
			}
		}
	}
}

func TestEmptySkipList(t *testing.T) {
	sl := BuildSkipList(nil)
	if sl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", sl.Len())
	}
	if sl.Head() != NoNode {
		t.Errorf("Head() = %d, want NoNode", sl.Head())
	}
}
