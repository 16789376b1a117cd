package service

import (
	"context"
	"fmt"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/repo/postgres"
)

type DashboardService interface {
	Counts(ctx context.Context) (*domain.DashboardCounts, error)
}

type dashboardService struct {
	contacts postgres.ContactRepository
	loans    postgres.LoanRepository
	comments postgres.CommentRepository
	posts    postgres.PostRepository
}

func NewDashboardService(
	contacts postgres.ContactRepository,
	loans postgres.LoanRepository,
	comments postgres.CommentRepository,
	posts postgres.PostRepository,
) DashboardService {
	return &dashboardService{contacts: contacts, loans: loans, comments: comments, posts: posts}
}

func (s *dashboardService) Counts(ctx context.Context) (*domain.DashboardCounts, error) {
	counts := &domain.DashboardCounts{}

	var err error
	if counts.NewContacts, err = s.contacts.CountByStatus(ctx, domain.ContactNew); err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}
	if counts.PendingLoans, err = s.loans.CountByStatus(ctx, domain.LoanPending); err != nil {
		return nil, fmt.Errorf("failed to count loan inquiries: %w", err)
	}
	if counts.PendingComments, err = s.comments.CountPending(ctx); err != nil {
		return nil, fmt.Errorf("failed to count pending comments: %w", err)
	}
	if counts.Posts, err = s.posts.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}
	return counts, nil
}
