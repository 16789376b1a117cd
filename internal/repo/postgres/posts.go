package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/platform/store"
)

type PostRepository interface {
	Create(ctx context.Context, req *domain.CreatePostRequest) (*domain.BlogPost, error)
	GetByID(ctx context.Context, id string) (*domain.BlogPost, error)
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*domain.BlogPost, error)
	ListPublished(ctx context.Context, limit, offset int) ([]domain.BlogPost, error)
	ListAll(ctx context.Context) ([]domain.BlogPost, error)
	Update(ctx context.Context, id string, values map[string]any) (*domain.BlogPost, error)
	Delete(ctx context.Context, id string) (bool, error)
	ExistsPublished(ctx context.Context, id string) (bool, error)
	IncrementViews(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) (int, error)
	Count(ctx context.Context) (int64, error)
}

type postRepository struct {
	db *store.Client
}

func NewPostRepository(db *store.Client) PostRepository {
	return &postRepository{db: db}
}

var postCols = []string{
	"id", "slug", "title", "summary", "content", "image_url", "tag",
	"published", "published_at", "likes_count", "views_count",
	"created_at", "updated_at",
}

func scanPost(row pgx.Row) (*domain.BlogPost, error) {
	var p domain.BlogPost
	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Summary, &p.Content, &p.ImageURL, &p.Tag,
		&p.Published, &p.PublishedAt, &p.LikesCount, &p.ViewsCount,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) Create(ctx context.Context, req *domain.CreatePostRequest) (*domain.BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.db.Table("blog_posts").InsertRow(ctx, map[string]any{
		"id":        uuid.NewString(),
		"slug":      req.Slug,
		"title":     req.Title,
		"summary":   req.Summary,
		"content":   req.Content,
		"image_url": req.ImageURL,
		"tag":       req.Tag,
		"published": false,
	}, postCols...)

	p, err := scanPost(row)
	if isUniqueViolation(err) {
		return nil, domain.ErrConflict
	}
	return p, err
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	p, err := scanPost(r.db.Table("blog_posts").Eq("id", id).Row(ctx, postCols...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*domain.BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	q := r.db.Table("blog_posts").Eq("slug", slug)
	if publishedOnly {
		q = q.Eq("published", true)
	}
	p, err := scanPost(q.Row(ctx, postCols...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *postRepository) ListPublished(ctx context.Context, limit, offset int) ([]domain.BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.Table("blog_posts").
		Eq("published", true).
		Order("published_at", true).
		Limit(limit).
		Offset(offset).
		Rows(ctx, postCols...)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

func (r *postRepository) ListAll(ctx context.Context) ([]domain.BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.Table("blog_posts").
		Order("created_at", true).
		Rows(ctx, postCols...)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

func collectPosts(rows pgx.Rows) ([]domain.BlogPost, error) {
	defer rows.Close()

	posts := []domain.BlogPost{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (r *postRepository) Update(ctx context.Context, id string, values map[string]any) (*domain.BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	values["updated_at"] = time.Now()
	row := r.db.Table("blog_posts").Eq("id", id).UpdateRow(ctx, values, postCols...)

	p, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if isUniqueViolation(err) {
		return nil, domain.ErrConflict
	}
	return p, err
}

func (r *postRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	n, err := r.db.Table("blog_posts").Eq("id", id).Delete(ctx)
	return n > 0, err
}

func (r *postRepository) ExistsPublished(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	n, err := r.db.Table("blog_posts").Eq("id", id).Eq("published", true).Count(ctx)
	return n > 0, err
}

// IncrementViews bumps views_count server-side. Callers treat failure as
// non-fatal: view counting must never block page rendering.
func (r *postRepository) IncrementViews(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx,
		`UPDATE blog_posts SET views_count = views_count + 1 WHERE id = $1`, id)
	return err
}

// IncrementLikes bumps likes_count in a single server-side statement.
// A read-modify-write on the client would lose updates under concurrent
// likes.
func (r *postRepository) IncrementLikes(ctx context.Context, id string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var count int
	err := r.db.QueryRow(ctx,
		`UPDATE blog_posts SET likes_count = likes_count + 1 WHERE id = $1 RETURNING likes_count`, id).
		Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	return count, err
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return r.db.Table("blog_posts").Count(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
