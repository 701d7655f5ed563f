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

type ReviewHandler struct {
	reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	out, err := h.reviews.List(r.Context(), limit, offset)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	rv, err := h.reviews.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rv)
}

// authorize allows the review's author or an admin.
func (h *ReviewHandler) authorize(r *http.Request, reviewID string) (models.Review, error) {
	rv, err := h.reviews.Get(r.Context(), reviewID)
	if err != nil {
		return models.Review{}, err
	}
	u, _ := middleware.CurrentUser(r.Context())
	if u.ID != rv.UserID && u.Role != models.RoleAdmin {
		return models.Review{}, &forbiddenError{}
	}
	return rv, nil
}

type forbiddenError struct{}

func (*forbiddenError) Error() string { return "forbidden" }

type reviewUpdateReq struct {
	Review *string `json:"review"`
	Rating *int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.authorize(r, id); err != nil {
		writeAuthzErr(w, err)
		return
	}
	var req reviewUpdateReq
	if err := validate.Body(r, &req); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	out, err := h.reviews.Update(r.Context(), id, models.ReviewUpdate{Body: req.Review, Rating: req.Rating})
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.authorize(r, id); err != nil {
		writeAuthzErr(w, err)
		return
	}
	if err := h.reviews.Delete(r.Context(), id); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeAuthzErr(w http.ResponseWriter, err error) {
	if _, ok := err.(*forbiddenError); ok {
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "you do not have permission to perform this action", nil)
		return
	}
	httpx.WriteAppError(w, err)
}
