package repl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/McSimik/inf-search/internal/index"
	"github.com/McSimik/inf-search/internal/search"
)

func newShellFixture(t *testing.T, input string) (*Shell, *bytes.Buffer) {
	t.Helper()
	e := search.NewEngine(index.New(), nil, nil)
	ctx := context.Background()
	e.AddDocument(ctx, []index.Field{
		{Name: index.FieldTitle, Text: "Cats"},
		{Name: index.FieldContent, Text: "the quick brown fox"},
	})
	e.AddDocument(ctx, []index.Field{
		{Name: index.FieldTitle, Text: "Dogs"},
		{Name: index.FieldContent, Text: "a lazy dog sleeps"},
	})
	var out bytes.Buffer
	return New(e, strings.NewReader(input), &out), &out
}

func TestShellQueryAndExit(t *testing.T) {
	shell, out := newShellFixture(t, "quick\nexit\n")
	if err := shell.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	output := out.String()
	for _, want := range []string{
		"Total docs: 2",
		"Search request: ",
		"Found docs: 1",
		"[1] Cats",
		"the quick brown fox",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestShellNothingFound(t *testing.T) {
	shell, out := newShellFixture(t, "walrus\nexit\n")
	if err := shell.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Nothing found.") {
		t.Errorf("output missing empty-result message:\n%s", out.String())
	}
}

func TestShellSkipsBlankLines(t *testing.T) {
	shell, out := newShellFixture(t, "\n\nexit\n")
	if err := shell.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "Found docs") || strings.Contains(out.String(), "Nothing found") {
		t.Errorf("blank lines should not execute queries:\n%s", out.String())
	}
}

func TestShellEndOfInput(t *testing.T) {
	shell, _ := newShellFixture(t, "quick\n")
	if err := shell.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestShellTruncatesLongContent(t *testing.T) {
	e := search.NewEngine(index.New(), nil, nil)
	long := strings.Repeat("reindeer ", 40)
	e.AddDocument(context.Background(), []index.Field{
		{Name: index.FieldTitle, Text: "Long"},
		{Name: index.FieldContent, Text: long},
	})
	var out bytes.Buffer
	shell := New(e, strings.NewReader("reindeer\nexit\n"), &out)
	if err := shell.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "...") {
		t.Errorf("long content should be truncated with an ellipsis:\n%s", out.String())
	}
}
