// Package tokenizer converts raw text into index terms. Splitting happens
// on whitespace and sentence punctuation; normalisation keeps only ASCII
// alphanumerics and folds letters to lower case. There is deliberately no
// stemming and no stop-word removal: the term space must stay trivially
// predictable from the input.
package tokenizer

import (
	"strings"
	"unicode"
)

// Tokenize splits text on whitespace and the punctuation set {. , ! ? ; :}.
// Every other character accumulates into the current token. Empty tokens
// are never emitted.
func Tokenize(text string) []string {
	tokens := make([]string, 0, len(text)/6)
	var b strings.Builder
	for _, r := range text {
		if unicode.IsSpace(r) || isBreakPunct(r) {
			if b.Len() > 0 {
				tokens = append(tokens, b.String())
				b.Reset()
			}
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}

func isBreakPunct(r rune) bool {
	switch r {
	case '.', ',', '!', '?', ';', ':':
		return true
	}
	return false
}

// Normalize reduces a raw token to its index term: ASCII letters fold to
// lower case, digits pass through, everything else is dropped. The empty
// string means the token carries no indexable content; callers must still
// consume its position so that proximity distances reflect the original
// token stream rather than the filtered one.
func Normalize(token string) string {
	var b strings.Builder
	b.Grow(len(token))
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		}
	}
	return b.String()
}
