package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docs.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCSVLoad(t *testing.T) {
	csv := "id,title,content\n" +
		"1,Cats,the quick brown fox\n" +
		"2,\"Dogs, mostly\",a lazy dog sleeps\n" +
		"bad-id,Birds,a swallow flies\n" +
		"\n" +
		"5,,\n" +
		"6, Spaced ,\t tabbed \n"

	loader := NewCSVLoader(writeTempCSV(t, csv), 100, ',')
	docs, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 4 {
		t.Fatalf("loaded %d documents, want 4", len(docs))
	}

	if docs[0].SourceID != "1" || docs[0].Title != "Cats" {
		t.Errorf("doc 0 = %+v", docs[0])
	}
	// A quoted field keeps its embedded separator, quotes dropped.
	if docs[1].Title != "Dogs, mostly" {
		t.Errorf("quoted title = %q", docs[1].Title)
	}
	// Unparseable id falls back to the file line number.
	if docs[2].SourceID != "4" {
		t.Errorf("fallback id = %q, want line number 4", docs[2].SourceID)
	}
	if docs[3].Title != "Spaced" || docs[3].Content != "tabbed" {
		t.Errorf("trimmed fields = %q / %q", docs[3].Title, docs[3].Content)
	}
}

func TestCSVLoadMaxRows(t *testing.T) {
	csv := "id,title,content\n" +
		"1,A,one\n" +
		"2,B,two\n" +
		"3,C,three\n"

	loader := NewCSVLoader(writeTempCSV(t, csv), 2, ',')
	docs, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("loaded %d documents, want 2", len(docs))
	}
	if docs[1].Title != "B" {
		t.Errorf("last loaded title = %q", docs[1].Title)
	}
}

func TestCSVLoadMissingFile(t *testing.T) {
	loader := NewCSVLoader(filepath.Join(t.TempDir(), "absent.csv"), 10, ',')
	if _, err := loader.Load(); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCSVLoadCustomSeparator(t *testing.T) {
	csv := "id;title;content\n" +
		"1;Semi;colon, separated values\n"

	loader := NewCSVLoader(writeTempCSV(t, csv), 10, ';')
	docs, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].Content != "colon, separated values" {
		t.Fatalf("docs = %+v", docs)
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"quoted separator", `a,"b,c",d`, []string{"a", "b,c", "d"}},
		{"unbalanced quote swallows separators", `a,"b,c`, []string{"a", "b,c"}},
		{"trailing separator yields empty field", "a,b,", []string{"a", "b", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitFields(tt.line, ',')
			if len(got) != len(tt.want) {
				t.Fatalf("splitFields(%q) = %v, want %v", tt.line, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
