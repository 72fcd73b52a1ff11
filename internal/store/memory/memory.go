package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/atshaw/quill/internal/domain"
)

// Store is an in-memory implementation of the blog store, used in tests.
// Semantics mirror the Redis store, including last-writer-wins slug mapping.
type Store struct {
	mu        sync.RWMutex
	posts     map[string]*domain.Post
	slugs     map[string]string
	bookmarks map[string]domain.Bookmark
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		posts:     make(map[string]*domain.Post),
		slugs:     make(map[string]string),
		bookmarks: make(map[string]domain.Bookmark),
	}
}

func (s *Store) SavePost(_ context.Context, post *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *post
	s.posts[post.ID] = &cp
	s.slugs[post.Slug] = post.ID
	return nil
}

func (s *Store) GetPost(_ context.Context, id string) (*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, domain.ErrPostNotFound)
	}
	cp := *post
	return &cp, nil
}

func (s *Store) GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	s.mu.RLock()
	id, ok := s.slugs[slug]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("slug %s: %w", slug, domain.ErrPostNotFound)
	}
	return s.GetPost(ctx, id)
}

func (s *Store) ListPosts(_ context.Context, offset, limit int) ([]*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*domain.Post, 0, len(s.posts))
	for _, post := range s.posts {
		cp := *post
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Timestamp.Equal(all[j].Timestamp) {
			return all[i].Timestamp.After(all[j].Timestamp)
		}
		return all[i].ID > all[j].ID
	})

	if offset >= len(all) || limit <= 0 {
		return []*domain.Post{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *Store) CountPosts(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts), nil
}

func (s *Store) DeletePostBySlug(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.slugs[slug]
	if !ok {
		return nil
	}
	delete(s.posts, id)
	delete(s.slugs, slug)
	return nil
}

func (s *Store) UpsertBookmark(_ context.Context, bookmark domain.Bookmark) (domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if bookmark.ID() == "" {
		bookmark.SetID(domain.NewID())
	}
	s.bookmarks[bookmark.ID()] = bookmark
	return bookmark, nil
}

func (s *Store) ListBookmarks(_ context.Context) ([]domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.bookmarks))
	for id := range s.bookmarks {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	bookmarks := make([]domain.Bookmark, 0, len(ids))
	for _, id := range ids {
		bookmarks = append(bookmarks, s.bookmarks[id])
	}
	return bookmarks, nil
}

func (s *Store) DeleteBookmark(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bookmarks, id)
	return nil
}
