package query

import (
	"strings"
	"unicode"
)

// Lex splits a raw query into tokens. Double quotes toggle the in-quotes
// state and are consumed, flushing the current token. Outside quotes,
// whitespace separates tokens and each of ( ) ~ / is emitted as its own
// single-character token. A second pass fuses the triplets NEAR / k and
// ADJ / k into single NEAR/k and ADJ/k tokens.
func Lex(query string) []string {
	var tokens []string
	var b strings.Builder
	inQuotes := false

	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}

	for _, r := range query {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			flush()
		case unicode.IsSpace(r) && !inQuotes:
			flush()
		case isOperatorRune(r) && !inQuotes:
			flush()
			tokens = append(tokens, string(r))
		default:
			b.WriteRune(r)
		}
	}
	flush()

	return fuseProximity(tokens)
}

func isOperatorRune(r rune) bool {
	return r == '(' || r == ')' || r == '~' || r == '/'
}

// fuseProximity joins NEAR or ADJ, a slash, and a digit-leading token into
// one operator token carrying the distance. Triplets that do not match
// (for example NEAR / abc) are left alone and fall through the parser as
// ordinary terms.
func fuseProximity(tokens []string) []string {
	fused := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		if (tokens[i] == "NEAR" || tokens[i] == "ADJ") &&
			i+2 < len(tokens) && tokens[i+1] == "/" &&
			tokens[i+2] != "" && isDigit(tokens[i+2][0]) {
			fused = append(fused, tokens[i]+"/"+tokens[i+2])
			i += 2
			continue
		}
		fused = append(fused, tokens[i])
	}
	return fused
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
