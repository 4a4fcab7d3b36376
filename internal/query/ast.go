// Package query implements the boolean query language: a lexer that
// honours quoted literals and the slash-joined proximity operators, and a
// recursive descent parser producing an AST with precedence
// OR < AND < NOT < primary.
package query

// Kind discriminates AST node types.
type Kind int

const (
	KindTerm Kind = iota
	KindAnd
	KindOr
	KindNot
	KindNear
	KindAdj
)

// Node is one vertex of the query AST. Value and Field are populated for
// term nodes (an empty Field means the global scope), Distance for NEAR
// and ADJ nodes. NOT uses only Left.
type Node struct {
	Kind     Kind
	Value    string
	Field    string
	Distance int
	Left     *Node
	Right    *Node
}
