package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/atshaw/quill/internal/domain"
)

// UpsertBookmark stores a bookmark document, replacing any existing document
// with the same id. Documents without an id get a fresh one assigned.
func (s *Store) UpsertBookmark(ctx context.Context, bookmark domain.Bookmark) (domain.Bookmark, error) {
	if bookmark.ID() == "" {
		bookmark.SetID(domain.NewID())
	}

	data, err := json.Marshal(bookmark)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bookmark: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, BookmarkKey(bookmark.ID()), data, 0)
	pipe.SAdd(ctx, KeyAllBookmarks, bookmark.ID())

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to save bookmark: %w", err)
	}
	return bookmark, nil
}

// GetBookmark retrieves a bookmark by id.
func (s *Store) GetBookmark(ctx context.Context, id string) (domain.Bookmark, error) {
	data, err := s.client.Get(ctx, BookmarkKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("bookmark not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	var bookmark domain.Bookmark
	if err := json.Unmarshal(data, &bookmark); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookmark: %w", err)
	}
	return bookmark, nil
}

// ListBookmarks retrieves all bookmarks, newest identifier first.
func (s *Store) ListBookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	ids, err := s.client.SMembers(ctx, KeyAllBookmarks).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark ids: %w", err)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	bookmarks := make([]domain.Bookmark, 0, len(ids))
	for _, id := range ids {
		bookmark, err := s.GetBookmark(ctx, id)
		if err != nil {
			// Skip bookmarks that couldn't be retrieved
			continue
		}
		bookmarks = append(bookmarks, bookmark)
	}
	return bookmarks, nil
}

// DeleteBookmark removes a bookmark. Deleting an unknown id is a no-op.
func (s *Store) DeleteBookmark(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, BookmarkKey(id))
	pipe.SRem(ctx, KeyAllBookmarks, id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}
