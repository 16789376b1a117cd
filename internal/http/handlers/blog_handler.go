package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/http/response"
	"github.com/bumiauto/web-api/internal/service"
	"github.com/bumiauto/web-api/internal/utils"
	"github.com/bumiauto/web-api/pkg/logger"
)

// BlogHandler serves the public blog endpoints. Only published posts and
// approved comments are ever visible here.
type BlogHandler struct {
	Posts      service.PostService
	Comments   service.CommentService
	Engagement service.EngagementService
}

func NewBlogHandler(posts service.PostService, comments service.CommentService, engagement service.EngagementService) *BlogHandler {
	return &BlogHandler{Posts: posts, Comments: comments, Engagement: engagement}
}

// Routes builds the public blog router. The write endpoints go through
// limit, which the caller supplies as the rate limiting middleware.
func (h *BlogHandler) Routes(limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.listPosts)
	r.Get("/{slug}", h.getPost)
	r.Get("/{postID}/comments", h.listComments)
	r.Group(func(r chi.Router) {
		if limit != nil {
			r.Use(limit)
		}
		r.Post("/{postID}/comment", h.submitComment)
		r.Post("/{postID}/like", h.likePost)
	})
	return r
}

func (h *BlogHandler) listPosts(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	posts, err := h.Posts.ListPublished(r.Context(), limit, offset)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list posts", "error", err)
		response.InternalError(w, "internal server error")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func (h *BlogHandler) getPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.Posts.GetPublishedBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "post not found")
			return
		}
		logger.ErrorContext(r.Context(), "failed to load post", "error", err, "slug", slug)
		response.InternalError(w, "internal server error")
		return
	}

	// A page read counts as a view. Failures are logged inside the
	// service and never surface to the reader.
	h.Engagement.RecordView(r.Context(), post.ID)

	response.WriteJSON(w, http.StatusOK, post)
}

func (h *BlogHandler) listComments(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	comments, err := h.Comments.ListApproved(r.Context(), postID)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list comments", "error", err, "post_id", postID)
		response.InternalError(w, "internal server error")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

func (h *BlogHandler) submitComment(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	var req domain.CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	comment, err := h.Comments.Submit(r.Context(), postID, &req)
	if err != nil {
		if domain.IsValidation(err) || errors.Is(err, domain.ErrNotFound) {
			response.FromError(w, err)
			return
		}
		logger.ErrorContext(r.Context(), "failed to submit comment", "error", err, "post_id", postID)
		response.InternalError(w, "internal server error")
		return
	}

	response.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "comment submitted for review",
		"comment": comment,
	})
}

func (h *BlogHandler) likePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	visitorID := service.Fingerprint(utils.ClientIP(r), r.UserAgent())

	likes, err := h.Engagement.Like(r.Context(), postID, visitorID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyLiked):
			response.Conflict(w, "already liked")
		case errors.Is(err, domain.ErrNotFound):
			response.NotFound(w, "post not found")
		default:
			logger.ErrorContext(r.Context(), "failed to record like", "error", err, "post_id", postID)
			response.InternalError(w, "internal server error")
		}
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{"likes_count": likes})
}
