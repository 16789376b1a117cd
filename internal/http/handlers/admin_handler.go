package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/http/response"
	"github.com/bumiauto/web-api/internal/service"
	"github.com/bumiauto/web-api/pkg/logger"
)

// AdminHandler serves the moderation and content management API. Every
// route here sits behind the admin session middleware.
type AdminHandler struct {
	Dashboard service.DashboardService
	Posts     service.PostService
	Comments  service.CommentService
	Inquiries service.InquiryService
}

func NewAdminHandler(
	dashboard service.DashboardService,
	posts service.PostService,
	comments service.CommentService,
	inquiries service.InquiryService,
) *AdminHandler {
	return &AdminHandler{Dashboard: dashboard, Posts: posts, Comments: comments, Inquiries: inquiries}
}

func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/dashboard", h.dashboard)

	r.Get("/comments", h.listComments)
	r.Patch("/comments/{id}", h.moderateComment)
	r.Delete("/comments/{id}", h.deleteComment)

	r.Get("/contacts", h.listContacts)
	r.Patch("/contacts/{id}", h.updateContact)
	r.Delete("/contacts/{id}", h.deleteContact)

	r.Get("/loan-inquiries", h.listLoans)
	r.Patch("/loan-inquiries/{id}", h.updateLoan)
	r.Delete("/loan-inquiries/{id}", h.deleteLoan)

	r.Get("/posts", h.listPosts)
	r.Post("/posts", h.createPost)
	r.Get("/posts/{id}", h.getPost)
	r.Patch("/posts/{id}", h.updatePost)
	r.Delete("/posts/{id}", h.deletePost)

	return r
}

func (h *AdminHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Dashboard.Counts(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to load dashboard counts", "error", err)
		response.InternalError(w, "internal server error")
		return
	}
	response.WriteJSON(w, http.StatusOK, counts)
}

func (h *AdminHandler) listComments(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	var approved *bool
	switch r.URL.Query().Get("approved") {
	case "true":
		v := true
		approved = &v
	case "false":
		v := false
		approved = &v
	}

	comments, err := h.Comments.ListForAdmin(r.Context(), approved, limit, offset)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list comments", "error", err)
		response.InternalError(w, "internal server error")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

func (h *AdminHandler) moderateComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in struct {
		Action string `json:"action"`
	}
	if err := decodeJSON(r, &in); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	comment, err := h.Comments.Moderate(r.Context(), id, in.Action)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to moderate comment")
		return
	}
	response.WriteJSON(w, http.StatusOK, comment)
}

func (h *AdminHandler) deleteComment(w http.ResponseWriter, r *http.Request) {
	if err := h.Comments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err, "failed to delete comment")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}

func (h *AdminHandler) listContacts(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	subs, err := h.Inquiries.ListContacts(r.Context(), r.URL.Query().Get("status"), limit, offset)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list contact submissions")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"contacts": subs})
}

func (h *AdminHandler) updateContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch domain.ContactPatch
	if err := decodeJSON(r, &patch); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.Inquiries.UpdateContact(r.Context(), id, patch); err != nil {
		h.writeServiceError(w, r, err, "failed to update contact submission")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "contact submission updated"})
}

func (h *AdminHandler) deleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.Inquiries.DeleteContact(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err, "failed to delete contact submission")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "contact submission deleted"})
}

func (h *AdminHandler) listLoans(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	loans, err := h.Inquiries.ListLoans(r.Context(), r.URL.Query().Get("status"), limit, offset)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list loan inquiries")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"loan_inquiries": loans})
}

func (h *AdminHandler) updateLoan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch domain.LoanPatch
	if err := decodeJSON(r, &patch); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.Inquiries.UpdateLoan(r.Context(), id, patch); err != nil {
		h.writeServiceError(w, r, err, "failed to update loan inquiry")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "loan inquiry updated"})
}

func (h *AdminHandler) deleteLoan(w http.ResponseWriter, r *http.Request) {
	if err := h.Inquiries.DeleteLoan(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err, "failed to delete loan inquiry")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "loan inquiry deleted"})
}

func (h *AdminHandler) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.ListAll(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list posts")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func (h *AdminHandler) createPost(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	post, err := h.Posts.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			response.Conflict(w, "a post with that slug already exists")
			return
		}
		h.writeServiceError(w, r, err, "failed to create post")
		return
	}
	response.WriteJSON(w, http.StatusCreated, post)
}

func (h *AdminHandler) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.Posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err, "failed to load post")
		return
	}
	response.WriteJSON(w, http.StatusOK, post)
}

func (h *AdminHandler) updatePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch domain.PostPatch
	if err := decodeJSON(r, &patch); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	post, err := h.Posts.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			response.Conflict(w, "a post with that slug already exists")
			return
		}
		h.writeServiceError(w, r, err, "failed to update post")
		return
	}
	response.WriteJSON(w, http.StatusOK, post)
}

func (h *AdminHandler) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.Posts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err, "failed to delete post")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

// writeServiceError maps the common service error shapes; anything
// unexpected is logged with the given message and hidden behind a 500.
func (h *AdminHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	if domain.IsValidation(err) || errors.Is(err, domain.ErrNotFound) {
		response.FromError(w, err)
		return
	}
	logger.ErrorContext(r.Context(), logMsg, "error", err)
	response.InternalError(w, "internal server error")
}
