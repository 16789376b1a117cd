package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/service"
)

func TestFingerprint(t *testing.T) {
	a := service.Fingerprint("203.0.113.7", "Mozilla/5.0")
	b := service.Fingerprint("203.0.113.7", "Mozilla/5.0")
	if a != b {
		t.Fatal("fingerprint must be deterministic for the same ip and user agent")
	}
	if len(a) != 32 {
		t.Fatalf("expected 32-char fingerprint, got %d", len(a))
	}
	if c := service.Fingerprint("203.0.113.8", "Mozilla/5.0"); c == a {
		t.Fatal("different ip must yield a different fingerprint")
	}
	if c := service.Fingerprint("203.0.113.7", "curl/8.0"); c == a {
		t.Fatal("different user agent must yield a different fingerprint")
	}
}

func TestLikeIncrementsCounter(t *testing.T) {
	posts := newMockPostRepo()
	post := posts.add(&domain.BlogPost{Slug: "p", Published: true, LikesCount: 4})
	likes := newMockLikeRepo()
	svc := service.NewEngagementService(likes, posts)

	count, err := svc.Like(context.Background(), post.ID, "visitor-1")
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected counter 5, got %d", count)
	}
}

func TestLikeDuplicateLeavesCounterUntouched(t *testing.T) {
	posts := newMockPostRepo()
	post := posts.add(&domain.BlogPost{Slug: "p", Published: true})
	likes := newMockLikeRepo()
	svc := service.NewEngagementService(likes, posts)

	if _, err := svc.Like(context.Background(), post.ID, "visitor-1"); err != nil {
		t.Fatalf("first like: %v", err)
	}
	_, err := svc.Like(context.Background(), post.ID, "visitor-1")
	if !errors.Is(err, domain.ErrAlreadyLiked) {
		t.Fatalf("expected ErrAlreadyLiked, got %v", err)
	}
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatal("ErrAlreadyLiked must also be a conflict")
	}
	if post.LikesCount != 1 {
		t.Fatalf("duplicate like must not touch the counter, got %d", post.LikesCount)
	}
}

func TestLikeDistinctVisitorsBothCount(t *testing.T) {
	posts := newMockPostRepo()
	post := posts.add(&domain.BlogPost{Slug: "p", Published: true})
	svc := service.NewEngagementService(newMockLikeRepo(), posts)

	if _, err := svc.Like(context.Background(), post.ID, "visitor-1"); err != nil {
		t.Fatalf("first like: %v", err)
	}
	count, err := svc.Like(context.Background(), post.ID, "visitor-2")
	if err != nil {
		t.Fatalf("second like: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected counter 2, got %d", count)
	}
}

func TestRecordViewSwallowsErrors(t *testing.T) {
	posts := newMockPostRepo()
	svc := service.NewEngagementService(newMockLikeRepo(), posts)

	// Missing post: err is logged, not surfaced.
	svc.RecordView(context.Background(), "absent")

	post := posts.add(&domain.BlogPost{Slug: "p", Published: true})
	svc.RecordView(context.Background(), post.ID)
	if post.ViewsCount != 1 {
		t.Fatalf("expected views 1, got %d", post.ViewsCount)
	}
}
