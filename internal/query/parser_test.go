package query

import "testing"

func parse(t *testing.T, q string) *Node {
	t.Helper()
	return NewParser(q).Parse()
}

func requireKind(t *testing.T, n *Node, kind Kind) *Node {
	t.Helper()
	if n == nil {
		t.Fatalf("node is nil, want kind %d", kind)
	}
	if n.Kind != kind {
		t.Fatalf("node kind = %d, want %d", n.Kind, kind)
	}
	return n
}

func requireTerm(t *testing.T, n *Node, value, field string) {
	t.Helper()
	requireKind(t, n, KindTerm)
	if n.Value != value || n.Field != field {
		t.Fatalf("term = %q field %q, want %q field %q", n.Value, n.Field, value, field)
	}
}

func TestParseEmptyQuery(t *testing.T) {
	if got := parse(t, ""); got != nil {
		t.Errorf("Parse(\"\") = %+v, want nil", got)
	}
	if got := parse(t, "   "); got != nil {
		t.Errorf("Parse(whitespace) = %+v, want nil", got)
	}
}

func TestParseSingleTerm(t *testing.T) {
	requireTerm(t, parse(t, "fox"), "fox", "")
}

func TestParseFieldTerm(t *testing.T) {
	n := parse(t, "title:dogs")
	requireTerm(t, n, "dogs", "title")
}

func TestParseFieldTermEdgeColons(t *testing.T) {
	// Leading or trailing colon is not a field separator.
	requireTerm(t, parse(t, ":value"), ":value", "")
	requireTerm(t, parseFieldTerm("title:"), "title:", "")
}

func TestParseImplicitAnd(t *testing.T) {
	n := requireKind(t, parse(t, "dog lazy"), KindAnd)
	requireTerm(t, n.Left, "dog", "")
	requireTerm(t, n.Right, "lazy", "")
}

func TestParseExplicitAndIsSkipped(t *testing.T) {
	n := requireKind(t, parse(t, "dog AND lazy"), KindAnd)
	requireTerm(t, n.Left, "dog", "")
	requireTerm(t, n.Right, "lazy", "")
}

func TestAndIsLeftAssociative(t *testing.T) {
	n := requireKind(t, parse(t, "a b c"), KindAnd)
	inner := requireKind(t, n.Left, KindAnd)
	requireTerm(t, inner.Left, "a", "")
	requireTerm(t, inner.Right, "b", "")
	requireTerm(t, n.Right, "c", "")
}

func TestOrBindsLoosestAndIsLeftAssociative(t *testing.T) {
	n := requireKind(t, parse(t, "a b OR c OR d"), KindOr)
	left := requireKind(t, n.Left, KindOr)
	and := requireKind(t, left.Left, KindAnd)
	requireTerm(t, and.Left, "a", "")
	requireTerm(t, and.Right, "b", "")
	requireTerm(t, left.Right, "c", "")
	requireTerm(t, n.Right, "d", "")
}

func TestNotBindsTighterThanAnd(t *testing.T) {
	n := requireKind(t, parse(t, "lazy AND NOT fox"), KindAnd)
	requireTerm(t, n.Left, "lazy", "")
	not := requireKind(t, n.Right, KindNot)
	requireTerm(t, not.Left, "fox", "")
	if not.Right != nil {
		t.Error("NOT node must not have a right child")
	}
}

func TestNotAtRoot(t *testing.T) {
	n := requireKind(t, parse(t, "NOT fox"), KindNot)
	requireTerm(t, n.Left, "fox", "")
}

func TestJuxtaposedNotTerminatesAnd(t *testing.T) {
	// Without an explicit AND, a NOT token ends the AND loop; the
	// trailing tokens are dropped. This mirrors the reference grammar.
	requireTerm(t, parse(t, "lazy NOT fox"), "lazy", "")
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	n := requireKind(t, parse(t, "(quick OR sleeps) AND dog"), KindAnd)
	or := requireKind(t, n.Left, KindOr)
	requireTerm(t, or.Left, "quick", "")
	requireTerm(t, or.Right, "sleeps", "")
	requireTerm(t, n.Right, "dog", "")
}

func TestUnbalancedParenthesisIsTolerated(t *testing.T) {
	n := requireKind(t, parse(t, "(quick OR sleeps"), KindOr)
	requireTerm(t, n.Left, "quick", "")
	requireTerm(t, n.Right, "sleeps", "")
}

func TestParseNear(t *testing.T) {
	n := requireKind(t, parse(t, "fox NEAR/5 dog"), KindNear)
	if n.Distance != 5 {
		t.Errorf("Distance = %d, want 5", n.Distance)
	}
	requireTerm(t, n.Left, "fox", "")
	requireTerm(t, n.Right, "dog", "")
}

func TestParseAdj(t *testing.T) {
	n := requireKind(t, parse(t, "quick ADJ/3 dog"), KindAdj)
	if n.Distance != 3 {
		t.Errorf("Distance = %d, want 3", n.Distance)
	}
	requireTerm(t, n.Left, "quick", "")
	requireTerm(t, n.Right, "dog", "")
}

func TestProximityWithFieldQualifiedOperands(t *testing.T) {
	n := requireKind(t, parse(t, "title:fox NEAR/2 content:dog"), KindNear)
	requireTerm(t, n.Left, "fox", "title")
	requireTerm(t, n.Right, "dog", "content")
}

func TestProximityBindsTighterThanAnd(t *testing.T) {
	n := requireKind(t, parse(t, "a b NEAR/2 c"), KindAnd)
	requireTerm(t, n.Left, "a", "")
	near := requireKind(t, n.Right, KindNear)
	requireTerm(t, near.Left, "b", "")
	requireTerm(t, near.Right, "c", "")
}

func TestProximityDoesNotAcceptSubexpressions(t *testing.T) {
	// A parenthesised left operand cannot join a proximity node: the AND
	// loop stops at the operator and the rest of the stream is dropped.
	requireTerm(t, parse(t, "(fox) NEAR/2 dog"), "fox", "")
}

func TestMalformedProximityParsesAsTerms(t *testing.T) {
	// NEAR/abc never fused, so NEAR flows through as an ordinary term:
	// fox AND NEAR, then the bare / and abc and dog continue the AND
	// chain.
	n := parse(t, "fox NEAR/abc dog")
	requireKind(t, n, KindAnd)
}

func TestTildeIsAnIgnorableTermToken(t *testing.T) {
	n := requireKind(t, parse(t, "fox ~ dog"), KindAnd)
	inner := requireKind(t, n.Left, KindAnd)
	requireTerm(t, inner.Left, "fox", "")
	requireTerm(t, inner.Right, "~", "")
	requireTerm(t, n.Right, "dog", "")
}

func TestQuotedValueKeepsInteriorWhitespace(t *testing.T) {
	n := parse(t, `"lazy dog"`)
	requireTerm(t, n, "lazy dog", "")
}

func TestDistanceParsingStopsAtNonDigit(t *testing.T) {
	n := requireKind(t, parse(t, "a NEAR/5x b"), KindNear)
	if n.Distance != 5 {
		t.Errorf("Distance = %d, want 5", n.Distance)
	}
}

func TestLoneNotYieldsOperandlessNode(t *testing.T) {
	n := requireKind(t, parse(t, "NOT"), KindNot)
	if n.Left != nil {
		t.Errorf("NOT operand = %+v, want nil", n.Left)
	}
}
