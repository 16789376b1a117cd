package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/repo/postgres"
	"github.com/bumiauto/web-api/internal/utils"
)

type PostService interface {
	// Public read path: published posts only.
	ListPublished(ctx context.Context, limit, offset int) ([]domain.BlogPost, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*domain.BlogPost, error)

	// Admin operations.
	ListAll(ctx context.Context) ([]domain.BlogPost, error)
	Get(ctx context.Context, id string) (*domain.BlogPost, error)
	Create(ctx context.Context, req *domain.CreatePostRequest) (*domain.BlogPost, error)
	Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.BlogPost, error)
	Delete(ctx context.Context, id string) error
}

type postService struct {
	posts     postgres.PostRepository
	sanitizer *bluemonday.Policy
}

func NewPostService(posts postgres.PostRepository) PostService {
	return &postService{
		posts:     posts,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (s *postService) ListPublished(ctx context.Context, limit, offset int) ([]domain.BlogPost, error) {
	return s.posts.ListPublished(ctx, limit, offset)
}

func (s *postService) GetPublishedBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	post, err := s.posts.GetBySlug(ctx, slug, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	if post == nil {
		return nil, domain.ErrNotFound
	}
	return post, nil
}

func (s *postService) ListAll(ctx context.Context) ([]domain.BlogPost, error) {
	return s.posts.ListAll(ctx)
}

func (s *postService) Get(ctx context.Context, id string) (*domain.BlogPost, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	if post == nil {
		return nil, domain.ErrNotFound
	}
	return post, nil
}

func (s *postService) Create(ctx context.Context, req *domain.CreatePostRequest) (*domain.BlogPost, error) {
	req.Title = utils.NormalizeString(req.Title)
	req.Slug = utils.NormalizeString(req.Slug)

	if req.Title == "" {
		return nil, domain.Invalid("title", "title is required")
	}
	if req.Slug == "" {
		return nil, domain.Invalid("slug", "slug is required")
	}
	if req.Content == "" {
		return nil, domain.Invalid("content", "content is required")
	}
	req.Content = s.sanitizer.Sanitize(req.Content)

	post, err := s.posts.Create(ctx, req)
	if errors.Is(err, domain.ErrConflict) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.BlogPost, error) {
	current, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	values := map[string]any{}
	if patch.Title != nil {
		values["title"] = utils.NormalizeString(*patch.Title)
	}
	if patch.Slug != nil {
		values["slug"] = utils.NormalizeString(*patch.Slug)
	}
	if patch.Summary != nil {
		values["summary"] = *patch.Summary
	}
	if patch.Content != nil {
		values["content"] = s.sanitizer.Sanitize(*patch.Content)
	}
	if patch.ImageURL != nil {
		values["image_url"] = *patch.ImageURL
	}
	if patch.Tag != nil {
		values["tag"] = *patch.Tag
	}
	if patch.Published != nil {
		values["published"] = *patch.Published
		// First publication stamps published_at; unpublishing keeps it.
		if *patch.Published && current.PublishedAt == nil {
			values["published_at"] = time.Now()
		}
	}
	if len(values) == 0 {
		return nil, domain.Invalid("", "nothing to update")
	}

	post, err := s.posts.Update(ctx, id, values)
	if errors.Is(err, domain.ErrConflict) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	if post == nil {
		return nil, domain.ErrNotFound
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id string) error {
	deleted, err := s.posts.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}
