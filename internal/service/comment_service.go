package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/repo/postgres"
	"github.com/bumiauto/web-api/internal/utils"
	"github.com/bumiauto/web-api/pkg/logger"
)

// Moderation actions accepted by Moderate.
const (
	ActionApprove   = "approve"
	ActionUnapprove = "unapprove"
)

type CommentService interface {
	// Submit creates a comment on a published post. The comment always
	// starts unapproved, whatever the caller sent.
	Submit(ctx context.Context, postID string, req *domain.CommentRequest) (*domain.BlogComment, error)
	// ListApproved is the public read path; it never exposes pending rows.
	ListApproved(ctx context.Context, postID string) ([]domain.BlogComment, error)
	ListForAdmin(ctx context.Context, approved *bool, limit, offset int) ([]domain.BlogComment, error)
	// Moderate applies approve/unapprove. Unapproving an already-pending
	// comment is a no-op that still succeeds.
	Moderate(ctx context.Context, id, action string) (*domain.BlogComment, error)
	Delete(ctx context.Context, id string) error
}

type commentService struct {
	comments  postgres.CommentRepository
	posts     postgres.PostRepository
	maxLength int
	sanitizer *bluemonday.Policy
}

func NewCommentService(comments postgres.CommentRepository, posts postgres.PostRepository, maxLength int) CommentService {
	return &commentService{
		comments:  comments,
		posts:     posts,
		maxLength: maxLength,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (s *commentService) Submit(ctx context.Context, postID string, req *domain.CommentRequest) (*domain.BlogComment, error) {
	name := utils.NormalizeString(req.Name)
	email := utils.NormalizeEmail(req.Email)
	content := utils.NormalizeString(req.Content)

	if name == "" {
		return nil, domain.Invalid("name", "name is required")
	}
	if email == "" {
		return nil, domain.Invalid("email", "email is required")
	}
	if !utils.IsValidEmail(email) {
		return nil, domain.Invalid("email", "invalid email address")
	}
	if content == "" {
		return nil, domain.Invalid("content", "comment is required")
	}
	// Characters, not bytes: multibyte comments count the same as ASCII.
	if utf8.RuneCountInString(content) > s.maxLength {
		return nil, domain.Invalid("content", fmt.Sprintf("comment is too long (max %d characters)", s.maxLength))
	}

	published, err := s.posts.ExistsPublished(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if !published {
		return nil, domain.ErrNotFound
	}

	comment := &domain.BlogComment{
		PostID:   postID,
		ParentID: req.ParentID,
		Name:     name,
		Email:    email,
		Content:  s.sanitizer.Sanitize(content),
		Approved: false, // requires moderation
	}

	created, err := s.comments.Create(ctx, comment)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	logger.InfoContext(ctx, "Comment submitted for moderation", "post_id", postID, "comment_id", created.ID)
	return created, nil
}

func (s *commentService) ListApproved(ctx context.Context, postID string) ([]domain.BlogComment, error) {
	return s.comments.ListByPost(ctx, postID, true)
}

func (s *commentService) ListForAdmin(ctx context.Context, approved *bool, limit, offset int) ([]domain.BlogComment, error) {
	return s.comments.List(ctx, approved, limit, offset)
}

func (s *commentService) Moderate(ctx context.Context, id, action string) (*domain.BlogComment, error) {
	var approved bool
	switch action {
	case ActionApprove:
		approved = true
	case ActionUnapprove:
		approved = false
	default:
		return nil, domain.Invalid("action", "use 'approve' or 'unapprove'")
	}

	comment, err := s.comments.SetApproved(ctx, id, approved)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	if comment == nil {
		return nil, domain.ErrNotFound
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, id string) error {
	deleted, err := s.comments.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}
