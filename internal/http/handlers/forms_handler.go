package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/http/response"
	"github.com/bumiauto/web-api/internal/service"
	"github.com/bumiauto/web-api/pkg/logger"
)

// FormsHandler receives the public contact and loan inquiry forms.
type FormsHandler struct {
	Inquiries service.InquiryService
}

func NewFormsHandler(inquiries service.InquiryService) *FormsHandler {
	return &FormsHandler{Inquiries: inquiries}
}

// Register attaches the form endpoints to r. They sit at the API root so
// the paths stay /api/contact and /api/loan-inquiry.
func (h *FormsHandler) Register(r chi.Router) {
	r.Post("/contact", h.submitContact)
	r.Post("/loan-inquiry", h.submitLoan)
}

func (h *FormsHandler) submitContact(w http.ResponseWriter, r *http.Request) {
	var req domain.ContactRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	sub, err := h.Inquiries.SubmitContact(r.Context(), &req)
	if err != nil {
		if domain.IsValidation(err) {
			response.FromError(w, err)
			return
		}
		logger.ErrorContext(r.Context(), "failed to submit contact form", "error", err)
		response.InternalError(w, "internal server error")
		return
	}

	response.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "thank you, we will be in touch",
		"id":      sub.ID,
	})
}

func (h *FormsHandler) submitLoan(w http.ResponseWriter, r *http.Request) {
	var req domain.LoanInquiryRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	inq, err := h.Inquiries.SubmitLoan(r.Context(), &req)
	if err != nil {
		if domain.IsValidation(err) {
			response.FromError(w, err)
			return
		}
		logger.ErrorContext(r.Context(), "failed to submit loan inquiry", "error", err)
		response.InternalError(w, "internal server error")
		return
	}

	response.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "thank you, our loan team will contact you",
		"id":      inq.ID,
	})
}
