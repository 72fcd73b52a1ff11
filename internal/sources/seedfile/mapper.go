package seedfile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/atshaw/quill/internal/domain"
)

// MapBookmarks converts seed entries to domain bookmark documents.
// Entries without a URL are skipped; an empty title falls back to the URL.
func MapBookmarks(f *File) ([]domain.Bookmark, error) {
	bookmarks := make([]domain.Bookmark, 0, len(f.Bookmarks))

	for _, e := range f.Bookmarks {
		if e.URL == "" {
			continue
		}
		title := e.Title
		if title == "" {
			title = e.URL
		}

		b := domain.Bookmark{
			"title": title,
			"url":   e.URL,
		}
		b.SetID(seedID(e.URL))
		bookmarks = append(bookmarks, b)
	}

	if len(bookmarks) == 0 {
		return nil, fmt.Errorf("no valid bookmarks found in seed file")
	}

	return bookmarks, nil
}

// seedID derives a stable identifier from a URL so re-seeding the same file
// upserts instead of duplicating.
func seedID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])[:16]
}
