package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/platform/store"
)

type LikeRepository interface {
	// InsertIfAbsent records a like and reports whether a row was actually
	// inserted. The (post_id, visitor_id) uniqueness lives in the database,
	// so two concurrent identical requests resolve to exactly one insert.
	InsertIfAbsent(ctx context.Context, postID, visitorID string) (bool, error)
}

type likeRepository struct {
	db *store.Client
}

func NewLikeRepository(db *store.Client) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) InsertIfAbsent(ctx context.Context, postID, visitorID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx,
		`INSERT INTO blog_likes (id, post_id, visitor_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (post_id, visitor_id) DO NOTHING`,
		uuid.NewString(), postID, visitorID)
	if isForeignKeyViolation(err) {
		return false, domain.ErrNotFound
	}
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
