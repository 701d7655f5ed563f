package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/tours-backend/internal/api/httpx"
	"github.com/baharkarakas/tours-backend/internal/api/validate"
	"github.com/baharkarakas/tours-backend/internal/middleware"
	"github.com/baharkarakas/tours-backend/internal/models"
	"github.com/baharkarakas/tours-backend/internal/services"
)

type BookingHandler struct {
	bookings *services.BookingService
}

func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type bookingReq struct {
	Tour string `json:"tour" validate:"required,uuid"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.CurrentUser(r.Context())
	var req bookingReq
	if err := validate.Body(r, &req); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	out, err := h.bookings.Create(r.Context(), req.Tour, u.ID)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, out)
}

// List returns the caller's bookings; admins see any user via ?user_id=.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.CurrentUser(r.Context())
	limit, offset := pagination(r)
	userID := u.ID
	if v := r.URL.Query().Get("user_id"); v != "" && u.Role == models.RoleAdmin {
		userID = v
	}
	out, err := h.bookings.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.CurrentUser(r.Context())
	b, err := h.bookings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	if b.UserID != u.ID && u.Role != models.RoleAdmin {
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "you do not have permission to perform this action", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.CurrentUser(r.Context())
	b, err := h.bookings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	if b.UserID != u.ID && u.Role != models.RoleAdmin {
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "you do not have permission to perform this action", nil)
		return
	}
	if err := h.bookings.Delete(r.Context(), b.ID); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
