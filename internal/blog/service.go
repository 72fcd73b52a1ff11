package blog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atshaw/quill/internal/domain"
	"github.com/atshaw/quill/internal/logger"
)

// Store is the persistence boundary for posts and bookmarks. The Redis store
// implements it in production, the memory store in tests.
type Store interface {
	SavePost(ctx context.Context, post *domain.Post) error
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error)
	ListPosts(ctx context.Context, offset, limit int) ([]*domain.Post, error)
	CountPosts(ctx context.Context) (int, error)
	DeletePostBySlug(ctx context.Context, slug string) error
	ListBookmarks(ctx context.Context) ([]domain.Bookmark, error)
	UpsertBookmark(ctx context.Context, bookmark domain.Bookmark) (domain.Bookmark, error)
	DeleteBookmark(ctx context.Context, id string) error
}

// Renderer converts Markdown source to HTML.
type Renderer interface {
	Render(text string) string
}

// Service owns the post and bookmark lifecycle. Handlers decide create vs
// update up front and call the matching method; the service never infers
// intent from the shape of its input.
type Service struct {
	store  Store
	render Renderer
	logger logger.Logger
	now    func() time.Time
}

// NewService creates a blog service over the given store and renderer.
func NewService(store Store, render Renderer, log logger.Logger) *Service {
	return &Service{
		store:  store,
		render: render,
		logger: log,
		now:    time.Now,
	}
}

// Create publishes a new post: slug derived from the title, HTML rendered
// from the text, creation time stamped in UTC.
func (s *Service) Create(ctx context.Context, req domain.CreatePost) (*domain.Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title: %w", domain.ErrMissingField)
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("text: %w", domain.ErrMissingField)
	}

	post := &domain.Post{
		ID:        domain.NewID(),
		Slug:      domain.Slugify(req.Title),
		Title:     req.Title,
		Text:      req.Text,
		HTML:      s.render.Render(req.Text),
		Author:    req.Author,
		Timestamp: s.now().UTC(),
	}

	if err := s.store.SavePost(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created",
		logger.String("id", post.ID),
		logger.String("slug", post.Slug))
	return post, nil
}

// Update edits a post in place. Title and text change and the HTML is
// re-rendered; slug, author and timestamp stay as they were.
func (s *Service) Update(ctx context.Context, req domain.UpdatePost) (*domain.Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title: %w", domain.ErrMissingField)
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("text: %w", domain.ErrMissingField)
	}

	post, err := s.store.GetPost(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	post.Title = req.Title
	post.Text = req.Text
	post.HTML = s.render.Render(req.Text)

	if err := s.store.SavePost(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post updated",
		logger.String("id", post.ID),
		logger.String("slug", post.Slug))
	return post, nil
}

// Delete removes the post matching slug. Unknown slugs are a no-op.
func (s *Service) Delete(ctx context.Context, slug string) error {
	if err := s.store.DeletePostBySlug(ctx, slug); err != nil {
		return err
	}
	s.logger.Info("post deleted", logger.String("slug", slug))
	return nil
}

// Post looks up a single post by its slug.
func (s *Service) Post(ctx context.Context, slug string) (*domain.Post, error) {
	return s.store.GetPostBySlug(ctx, slug)
}

// Feed returns one page of posts, newest first, plus the total post count.
func (s *Service) Feed(ctx context.Context, page, pageSize int) ([]*domain.Post, int, error) {
	posts, err := s.store.ListPosts(ctx, page*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.CountPosts(ctx)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Bookmarks returns all sidebar bookmarks, newest identifier first.
func (s *Service) Bookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	return s.store.ListBookmarks(ctx)
}

// UpsertBookmark stores a raw bookmark document, replacing by id when one is
// present.
func (s *Service) UpsertBookmark(ctx context.Context, bookmark domain.Bookmark) (domain.Bookmark, error) {
	return s.store.UpsertBookmark(ctx, bookmark)
}

// DeleteBookmark removes a bookmark. Unknown ids are a no-op.
func (s *Service) DeleteBookmark(ctx context.Context, id string) error {
	return s.store.DeleteBookmark(ctx, id)
}
