package indexer

import "testing"

func TestTokenizeMinLength(t *testing.T) {
	tokens := tokenize("ab abc ab_c 12 123")
	var texts []string
	for _, tok := range tokens {
		texts = append(texts, tok.text)
	}
	want := []string{"abc", "ab_c", "123"}
	if len(texts) != len(want) {
		t.Fatalf("got %v, want %v", texts, want)
	}
	for i, w := range want {
		if texts[i] != w {
			t.Errorf("token %d: got %q, want %q", i, texts[i], w)
		}
	}
}

func TestTokenizeColumn(t *testing.T) {
	tokens := tokenize("  foo bar")
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2", len(tokens))
	}
	if tokens[0].column != 2 {
		t.Errorf("got column %d, want 2", tokens[0].column)
	}
	if tokens[1].column != 6 {
		t.Errorf("got column %d, want 6", tokens[1].column)
	}
}

func TestIndexFileAndSearch(t *testing.T) {
	ix := New()
	ix.IndexFile("a.go", "func Foo() {\n  bar(baz)\n}")

	hits := ix.Search("bar", 10)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].FilePath != "a.go" || hits[0].Line != 1 {
		t.Errorf("unexpected hit: %+v", hits[0])
	}
	if hits[0].LineText != "  bar(baz)" {
		t.Errorf("unexpected line text: %q", hits[0].LineText)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	ix := New()
	ix.IndexFile("a.go", "func Foo() {}")

	hits := ix.Search("FOO", 10)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
}

func TestSearchRespectsMaxResults(t *testing.T) {
	ix := New()
	ix.IndexFile("a.go", "foo foo foo foo")

	hits := ix.Search("foo", 2)
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
}

func TestIndexFileReplacesPreviousEntries(t *testing.T) {
	ix := New()
	ix.IndexFile("a.go", "alpha bravo")
	ix.IndexFile("a.go", "charlie")

	if hits := ix.Search("alpha", 10); len(hits) != 0 {
		t.Errorf("expected stale word removed, got %+v", hits)
	}
	if hits := ix.Search("charlie", 10); len(hits) != 1 {
		t.Errorf("expected new word indexed, got %+v", hits)
	}
}

func TestRemoveFile(t *testing.T) {
	ix := New()
	ix.IndexFile("a.go", "alpha bravo")
	ix.IndexFile("b.go", "alpha charlie")

	ix.RemoveFile("a.go")

	if ix.IndexedFileCount() != 1 {
		t.Errorf("expected 1 indexed file, got %d", ix.IndexedFileCount())
	}
	hits := ix.Search("alpha", 10)
	if len(hits) != 1 || hits[0].FilePath != "b.go" {
		t.Errorf("expected only b.go to remain, got %+v", hits)
	}
}

func TestStartStopIdempotent(t *testing.T) {
	ix := New()
	ix.Start()
	ix.Start()
	if !ix.IsIndexing() {
		t.Fatal("expected indexer to be running")
	}
	ix.Stop()
	ix.Stop()
	if ix.IsIndexing() {
		t.Fatal("expected indexer to have stopped")
	}
}
