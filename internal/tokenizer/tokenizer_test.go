package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple words",
			text: "the quick brown fox",
			want: []string{"the", "quick", "brown", "fox"},
		},
		{
			name: "sentence punctuation splits",
			text: "hello,world.foo!bar?baz;qux:end",
			want: []string{"hello", "world", "foo", "bar", "baz", "qux", "end"},
		},
		{
			name: "runs of separators collapse",
			text: "a,,  b..  c",
			want: []string{"a", "b", "c"},
		},
		{
			name: "other punctuation is kept in tokens",
			text: "don't e-mail user@host (really)",
			want: []string{"don't", "e-mail", "user@host", "(really)"},
		},
		{
			name: "leading and trailing separators",
			text: "  ...word!  ",
			want: []string{"word"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
		{
			name: "only separators",
			text: " .,!?;: ",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"Hello", "hello"},
		{"WORLD", "world"},
		{"abc123", "abc123"},
		{"don't", "dont"},
		{"e-mail", "email"},
		{"(really)", "really"},
		{"...", ""},
		{"", ""},
		{"42", "42"},
		{"MixedCASE99", "mixedcase99"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.token); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}
