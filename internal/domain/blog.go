package domain

import "time"

type BlogPost struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Summary     *string    `json:"summary,omitempty"`
	Content     string     `json:"content"`
	ImageURL    *string    `json:"image_url,omitempty"`
	Tag         *string    `json:"tag,omitempty"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	LikesCount  int        `json:"likes_count"`
	ViewsCount  int        `json:"views_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreatePostRequest struct {
	Title    string  `json:"title"`
	Slug     string  `json:"slug"`
	Summary  *string `json:"summary,omitempty"`
	Content  string  `json:"content"`
	ImageURL *string `json:"image_url,omitempty"`
	Tag      *string `json:"tag,omitempty"`
}

// PostPatch carries a partial admin update. Counter columns are absent on
// purpose: likes_count and views_count are only ever mutated through the
// server-side increment statements, never overwritten from client input.
type PostPatch struct {
	Title     *string `json:"title,omitempty"`
	Slug      *string `json:"slug,omitempty"`
	Summary   *string `json:"summary,omitempty"`
	Content   *string `json:"content,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
	Tag       *string `json:"tag,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

type BlogComment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	ParentID  *string   `json:"parent_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Content   string    `json:"content"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentRequest is the public submission payload. Any client-supplied
// approved field is ignored: new comments always start unapproved.
type CommentRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id,omitempty"`
}

type BlogLike struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	VisitorID string    `json:"visitor_id"`
	CreatedAt time.Time `json:"created_at"`
}
