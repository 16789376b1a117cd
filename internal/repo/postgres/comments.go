package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/platform/store"
)

type CommentRepository interface {
	Create(ctx context.Context, c *domain.BlogComment) (*domain.BlogComment, error)
	ListByPost(ctx context.Context, postID string, approvedOnly bool) ([]domain.BlogComment, error)
	List(ctx context.Context, approved *bool, limit, offset int) ([]domain.BlogComment, error)
	SetApproved(ctx context.Context, id string, approved bool) (*domain.BlogComment, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountPending(ctx context.Context) (int64, error)
}

type commentRepository struct {
	db *store.Client
}

func NewCommentRepository(db *store.Client) CommentRepository {
	return &commentRepository{db: db}
}

var commentCols = []string{
	"id", "post_id", "parent_id", "name", "email", "content", "approved", "created_at",
}

func scanComment(row pgx.Row) (*domain.BlogComment, error) {
	var c domain.BlogComment
	err := row.Scan(
		&c.ID, &c.PostID, &c.ParentID, &c.Name, &c.Email, &c.Content,
		&c.Approved, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) Create(ctx context.Context, c *domain.BlogComment) (*domain.BlogComment, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.db.Table("blog_comments").InsertRow(ctx, map[string]any{
		"id":        uuid.NewString(),
		"post_id":   c.PostID,
		"parent_id": c.ParentID,
		"name":      c.Name,
		"email":     c.Email,
		"content":   c.Content,
		"approved":  c.Approved,
	}, commentCols...)

	created, err := scanComment(row)
	if isForeignKeyViolation(err) {
		return nil, domain.ErrNotFound
	}
	return created, err
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string, approvedOnly bool) ([]domain.BlogComment, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	q := r.db.Table("blog_comments").Eq("post_id", postID).Order("created_at", false)
	if approvedOnly {
		q = q.Eq("approved", true)
	}
	rows, err := q.Rows(ctx, commentCols...)
	if err != nil {
		return nil, err
	}
	return collectComments(rows)
}

func (r *commentRepository) List(ctx context.Context, approved *bool, limit, offset int) ([]domain.BlogComment, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	q := r.db.Table("blog_comments").Order("created_at", true).Limit(limit).Offset(offset)
	if approved != nil {
		q = q.Eq("approved", *approved)
	}
	rows, err := q.Rows(ctx, commentCols...)
	if err != nil {
		return nil, err
	}
	return collectComments(rows)
}

func collectComments(rows pgx.Rows) ([]domain.BlogComment, error) {
	defer rows.Close()

	comments := []domain.BlogComment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

func (r *commentRepository) SetApproved(ctx context.Context, id string, approved bool) (*domain.BlogComment, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.db.Table("blog_comments").Eq("id", id).
		UpdateRow(ctx, map[string]any{"approved": approved}, commentCols...)

	c, err := scanComment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *commentRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	n, err := r.db.Table("blog_comments").Eq("id", id).Delete(ctx)
	return n > 0, err
}

func (r *commentRepository) CountPending(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return r.db.Table("blog_comments").Eq("approved", false).Count(ctx)
}
