package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/atshaw/quill/internal/domain"
	"github.com/atshaw/quill/internal/logger"
)

// SavePost stores a post document and updates both indexes in one transaction.
// Slug uniqueness is not enforced: a colliding slug overwrites the index entry
// and the older post becomes unreachable by permalink. We log and move on,
// matching the store's historical behavior.
func (s *Store) SavePost(ctx context.Context, post *domain.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("failed to marshal post: %w", err)
	}

	if prev, err := s.client.HGet(ctx, KeyPostsBySlug, post.Slug).Result(); err == nil && prev != post.ID {
		s.logger.Warn("slug collision, previous post unreachable by permalink",
			logger.String("slug", post.Slug),
			logger.String("previous_id", prev),
			logger.String("id", post.ID))
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, PostKey(post.ID), data, 0)
	pipe.ZAdd(ctx, KeyPostsByTime, redis.Z{
		Score:  float64(post.Timestamp.UnixNano()),
		Member: post.ID,
	})
	pipe.HSet(ctx, KeyPostsBySlug, post.Slug, post.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	return nil
}

// GetPost retrieves a post by id.
func (s *Store) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	data, err := s.client.Get(ctx, PostKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("post %s: %w", id, domain.ErrPostNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	var post domain.Post
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, fmt.Errorf("failed to unmarshal post: %w", err)
	}
	return &post, nil
}

// GetPostBySlug retrieves a post through the slug index.
func (s *Store) GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	id, err := s.client.HGet(ctx, KeyPostsBySlug, slug).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("slug %s: %w", slug, domain.ErrPostNotFound)
		}
		return nil, fmt.Errorf("failed to resolve slug: %w", err)
	}
	return s.GetPost(ctx, id)
}

// ListPosts returns posts sorted by timestamp descending, applying the given
// offset and limit. An offset past the end yields an empty slice, not an error.
func (s *Store) ListPosts(ctx context.Context, offset, limit int) ([]*domain.Post, error) {
	if limit <= 0 {
		return []*domain.Post{}, nil
	}

	ids, err := s.client.ZRevRange(ctx, KeyPostsByTime, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to range posts: %w", err)
	}

	posts := make([]*domain.Post, 0, len(ids))
	for _, id := range ids {
		post, err := s.GetPost(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrPostNotFound) {
				// Index entry outlived its document, skip it.
				continue
			}
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// CountPosts returns the total number of posts.
func (s *Store) CountPosts(ctx context.Context) (int, error) {
	n, err := s.client.ZCard(ctx, KeyPostsByTime).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return int(n), nil
}

// DeletePostBySlug removes the post matching slug along with its index
// entries. Deleting an unknown slug is a no-op.
func (s *Store) DeletePostBySlug(ctx context.Context, slug string) error {
	id, err := s.client.HGet(ctx, KeyPostsBySlug, slug).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("failed to resolve slug: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, PostKey(id))
	pipe.ZRem(ctx, KeyPostsByTime, id)
	pipe.HDel(ctx, KeyPostsBySlug, slug)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}
