package handlers

import (
	"net/http"

	"github.com/baharkarakas/tours-backend/internal/api/httpx"
	"github.com/baharkarakas/tours-backend/internal/api/validate"
	"github.com/baharkarakas/tours-backend/internal/middleware"
	repo "github.com/baharkarakas/tours-backend/internal/repository"
	"github.com/baharkarakas/tours-backend/internal/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.CurrentUser(r.Context())
	httpx.WriteJSON(w, http.StatusOK, u)
}

type updateMeReq struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email *string `json:"email" validate:"omitempty,email,max=255"`
	Photo *string `json:"photo" validate:"omitempty,max=255"`
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.CurrentUser(r.Context())
	var req updateMeReq
	if err := validate.Body(r, &req); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	out, err := h.users.UpdateProfile(r.Context(), u.ID, req.Name, req.Email, req.Photo)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// DeleteMe deactivates the account (soft delete); the record remains for
// referential integrity of reviews and bookings.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.CurrentUser(r.Context())
	if err := h.users.Deactivate(r.Context(), u.ID); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List is admin-only; include_inactive=true overrides the soft-delete filter.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	f := repo.UserFilter{IncludeInactive: r.URL.Query().Get("include_inactive") == "true"}
	users, err := h.users.List(r.Context(), f, limit, offset)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, users)
}
