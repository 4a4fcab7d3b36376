package query

import "strings"

// Parser is a recursive descent parser over the lexed token stream.
// Precedence, lowest first: OR, AND (explicit or implied by
// juxtaposition), NOT, primary. NEAR/k and ADJ/k bind at the primary level
// and accept only bare terms as operands, never subexpressions.
//
// The parser is total: it never fails on query content. A missing closing
// parenthesis ends the subexpression at the token stream end, and operator
// fragments that did not fuse parse as ordinary terms.
type Parser struct {
	tokens []string
	pos    int
}

// NewParser lexes the query and prepares a parser over its tokens.
func NewParser(query string) *Parser {
	return &Parser{tokens: Lex(query)}
}

// Parse returns the AST root, or nil for an empty query.
func (p *Parser) Parse() *Node {
	if len(p.tokens) == 0 {
		return nil
	}
	return p.parseOr()
}

func (p *Parser) parseOr() *Node {
	left := p.parseAnd()
	for p.pos < len(p.tokens) && p.tokens[p.pos] == "OR" {
		p.pos++
		right := p.parseAnd()
		left = &Node{Kind: KindOr, Left: left, Right: right}
	}
	return left
}

// parseAnd combines juxtaposed operands with AND nodes. An explicit AND
// token is accepted and skipped but never required. The loop stops at OR,
// NOT, a closing parenthesis, or an upcoming proximity operator.
func (p *Parser) parseAnd() *Node {
	left := p.parseNot()
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok == "OR" || tok == "NOT" || tok == ")" || isProximityOp(tok) {
			break
		}
		if tok == "AND" {
			p.pos++
		}
		right := p.parseNot()
		if right == nil {
			break
		}
		left = &Node{Kind: KindAnd, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseNot() *Node {
	if p.pos < len(p.tokens) && p.tokens[p.pos] == "NOT" {
		p.pos++
		return &Node{Kind: KindNot, Left: p.parsePrimary()}
	}
	return p.parsePrimary()
}

// parsePrimary handles parenthesised groups, the term-NEAR/k-term and
// term-ADJ/k-term triplets, and plain field terms, in that order.
func (p *Parser) parsePrimary() *Node {
	if p.pos >= len(p.tokens) {
		return nil
	}

	if p.tokens[p.pos] == "(" {
		p.pos++
		node := p.parseOr()
		if p.pos < len(p.tokens) && p.tokens[p.pos] == ")" {
			p.pos++
		}
		return node
	}

	if p.pos+2 < len(p.tokens) {
		if op := p.tokens[p.pos+1]; isProximityOp(op) {
			kind := KindNear
			if strings.HasPrefix(op, "ADJ/") {
				kind = KindAdj
			}
			node := &Node{
				Kind:     kind,
				Distance: leadingInt(op[strings.IndexByte(op, '/')+1:]),
				Left:     parseFieldTerm(p.tokens[p.pos]),
				Right:    parseFieldTerm(p.tokens[p.pos+2]),
			}
			p.pos += 3
			return node
		}
	}

	term := p.tokens[p.pos]
	p.pos++
	return parseFieldTerm(term)
}

func isProximityOp(tok string) bool {
	return strings.HasPrefix(tok, "NEAR/") || strings.HasPrefix(tok, "ADJ/")
}

// parseFieldTerm splits a lexeme of the form field:value into a TERM node.
// A colon at the very start or very end is not a field separator. A value
// surrounded by a matching pair of double quotes has them stripped.
func parseFieldTerm(lexeme string) *Node {
	field, value := "", lexeme
	if i := strings.IndexByte(lexeme, ':'); i > 0 && i < len(lexeme)-1 {
		field, value = lexeme[:i], lexeme[i+1:]
	}
	return &Node{Kind: KindTerm, Value: stripQuotes(value), Field: field}
}

func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// leadingInt parses the decimal digits at the start of s, ignoring any
// trailing garbage, so NEAR/5x carries distance 5.
func leadingInt(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			break
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}
