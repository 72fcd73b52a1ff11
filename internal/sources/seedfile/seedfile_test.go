package seedfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "bookmarks.yaml")

	yamlContent := `---
bookmarks:
  - title: The Go Blog
    url: https://go.dev/blog
  - title: Hacker News
    url: https://news.ycombinator.com
`

	err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644)
	if err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	f, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(f.Bookmarks) != 2 {
		t.Fatalf("Load() returned %d bookmarks, want 2", len(f.Bookmarks))
	}
	if f.Bookmarks[0].Title != "The Go Blog" {
		t.Errorf("first title = %q, want %q", f.Bookmarks[0].Title, "The Go Blog")
	}
}

func TestLoaderLoadMissingFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := loader.Load(); err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
}

func TestMapBookmarks(t *testing.T) {
	f := &File{Bookmarks: []Entry{
		{Title: "The Go Blog", URL: "https://go.dev/blog"},
		{Title: "", URL: "https://example.com"},
		{Title: "no url, skipped", URL: ""},
	}}

	bookmarks, err := MapBookmarks(f)
	if err != nil {
		t.Fatalf("MapBookmarks() error = %v", err)
	}

	if len(bookmarks) != 2 {
		t.Fatalf("MapBookmarks() returned %d bookmarks, want 2", len(bookmarks))
	}

	if bookmarks[0]["title"] != "The Go Blog" {
		t.Errorf("title = %v, want %q", bookmarks[0]["title"], "The Go Blog")
	}
	if bookmarks[1]["title"] != "https://example.com" {
		t.Errorf("empty title should fall back to URL, got %v", bookmarks[1]["title"])
	}

	if bookmarks[0].ID() == "" {
		t.Error("mapped bookmark has no id")
	}
	if len(bookmarks[0].ID()) != 16 {
		t.Errorf("id length = %d, want 16", len(bookmarks[0].ID()))
	}
}

func TestMapBookmarksStableIDs(t *testing.T) {
	f := &File{Bookmarks: []Entry{{Title: "A", URL: "https://go.dev/blog"}}}

	first, err := MapBookmarks(f)
	if err != nil {
		t.Fatalf("MapBookmarks() error = %v", err)
	}
	f.Bookmarks[0].Title = "renamed"
	second, err := MapBookmarks(f)
	if err != nil {
		t.Fatalf("MapBookmarks() error = %v", err)
	}

	if first[0].ID() != second[0].ID() {
		t.Errorf("same URL produced different ids: %q vs %q", first[0].ID(), second[0].ID())
	}
}

func TestMapBookmarksEmpty(t *testing.T) {
	if _, err := MapBookmarks(&File{}); err == nil {
		t.Fatal("MapBookmarks() expected error for empty file, got nil")
	}
}
