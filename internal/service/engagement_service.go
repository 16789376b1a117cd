package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/repo/postgres"
	"github.com/bumiauto/web-api/pkg/logger"
)

// Fingerprint derives the pseudo-anonymous visitor id from the client IP
// and user agent. It is deterministic and saltless, so the same browser
// always maps to the same id. Visitors behind a shared IP or proxy can
// collide; that is an accepted limitation of the anonymous engagement
// model, not a bug.
func Fingerprint(ip, userAgent string) string {
	sum := sha256.Sum256([]byte(ip + "-" + userAgent))
	return hex.EncodeToString(sum[:])[:32]
}

type EngagementService interface {
	// Like records a like for the visitor and returns the updated counter.
	// A repeat like returns domain.ErrAlreadyLiked with the counter
	// untouched.
	Like(ctx context.Context, postID, visitorID string) (int, error)
	// RecordView bumps the view counter; failures are logged and swallowed.
	RecordView(ctx context.Context, postID string)
}

type engagementService struct {
	likes postgres.LikeRepository
	posts postgres.PostRepository
}

func NewEngagementService(likes postgres.LikeRepository, posts postgres.PostRepository) EngagementService {
	return &engagementService{likes: likes, posts: posts}
}

func (s *engagementService) Like(ctx context.Context, postID, visitorID string) (int, error) {
	inserted, err := s.likes.InsertIfAbsent(ctx, postID, visitorID)
	if err != nil {
		return 0, fmt.Errorf("failed to record like: %w", err)
	}
	if !inserted {
		return 0, domain.ErrAlreadyLiked
	}

	count, err := s.posts.IncrementLikes(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to increment likes count: %w", err)
	}
	return count, nil
}

func (s *engagementService) RecordView(ctx context.Context, postID string) {
	if err := s.posts.IncrementViews(ctx, postID); err != nil {
		logger.WarnContext(ctx, "Failed to record view", "error", err, "post_id", postID)
	}
}
