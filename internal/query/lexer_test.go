package query

import (
	"reflect"
	"testing"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "plain terms",
			query: "quick brown fox",
			want:  []string{"quick", "brown", "fox"},
		},
		{
			name:  "parentheses become single tokens",
			query: "(a OR b) AND c",
			want:  []string{"(", "a", "OR", "b", ")", "AND", "c"},
		},
		{
			name:  "quoted literal keeps whitespace together",
			query: `title:"lazy dog" fox`,
			want:  []string{"title:", "lazy dog", "fox"},
		},
		{
			name:  "quotes are consumed",
			query: `"single"`,
			want:  []string{"single"},
		},
		{
			name:  "near operator fuses",
			query: "fox NEAR/5 dog",
			want:  []string{"fox", "NEAR/5", "dog"},
		},
		{
			name:  "adj operator fuses",
			query: "quick ADJ/3 dog",
			want:  []string{"quick", "ADJ/3", "dog"},
		},
		{
			name:  "spaced slash form fuses too",
			query: "fox NEAR / 2 dog",
			want:  []string{"fox", "NEAR/2", "dog"},
		},
		{
			name:  "malformed distance does not fuse",
			query: "fox NEAR/abc dog",
			want:  []string{"fox", "NEAR", "/", "abc", "dog"},
		},
		{
			name:  "near without operands stays bare",
			query: "NEAR",
			want:  []string{"NEAR"},
		},
		{
			name:  "tilde is its own token",
			query: "fox~ dog",
			want:  []string{"fox", "~", "dog"},
		},
		{
			name:  "slash inside quotes accumulates",
			query: `"a/b"`,
			want:  []string{"a/b"},
		},
		{
			name:  "empty query",
			query: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			query: "   \t ",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lex(tt.query)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lex(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFuseProximityAtStreamEnd(t *testing.T) {
	// The triplet needs all three tokens present; a dangling NEAR / at the
	// end of the stream stays unfused.
	got := Lex("fox NEAR/")
	want := []string{"fox", "NEAR", "/"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lex = %v, want %v", got, want)
	}
}

func TestFuseProximityDigitPrefixOnly(t *testing.T) {
	// stoi semantics: the distance is the leading digit run, trailing
	// characters ride along in the token.
	got := Lex("fox NEAR/5x dog")
	want := []string{"fox", "NEAR/5x", "dog"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lex = %v, want %v", got, want)
	}
}
