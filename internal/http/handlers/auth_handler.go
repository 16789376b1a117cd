package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/http/response"
	"github.com/bumiauto/web-api/internal/platform/session"
	"github.com/bumiauto/web-api/internal/service"
	"github.com/bumiauto/web-api/pkg/logger"
)

type AuthHandler struct {
	Auth   service.AuthService
	Codec  *session.Codec
	Secure bool
}

func NewAuthHandler(auth service.AuthService, codec *session.Codec, secure bool) *AuthHandler {
	return &AuthHandler{Auth: auth, Codec: codec, Secure: secure}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Get("/session", h.currentSession)
	return r
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	user, token, err := h.Auth.Login(r.Context(), &req)
	if err != nil {
		if domain.IsValidation(err) || errors.Is(err, domain.ErrUnauthorized) {
			// Do not tell the caller which part of the credentials failed.
			response.Unauthorized(w, "invalid credentials")
			return
		}
		logger.ErrorContext(r.Context(), "login failed", "error", err)
		response.InternalError(w, "internal server error")
		return
	}

	session.SetCookie(w, token, h.Codec.TTL(), h.Secure)
	response.WriteJSON(w, http.StatusOK, map[string]any{
		"user": map[string]string{
			"email": user.Email,
			"role":  user.Role,
			"name":  user.Name,
		},
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	session.ClearCookie(w, h.Secure)
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// currentSession lets the admin UI check whether its cookie is still
// live without triggering a redirect.
func (h *AuthHandler) currentSession(w http.ResponseWriter, r *http.Request) {
	s := h.Codec.FromRequest(r)
	if s == nil {
		response.Unauthorized(w, "no active session")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{
		"email":      s.Email,
		"role":       s.Role,
		"name":       s.Name,
		"expires_at": s.Exp,
	})
}
