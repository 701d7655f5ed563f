package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/tours-backend/internal/api/httpx"
	"github.com/baharkarakas/tours-backend/internal/api/validate"
	"github.com/baharkarakas/tours-backend/internal/middleware"
	"github.com/baharkarakas/tours-backend/internal/models"
	repo "github.com/baharkarakas/tours-backend/internal/repository"
	"github.com/baharkarakas/tours-backend/internal/services"
)

type TourHandler struct {
	tours   *services.TourService
	reviews *services.ReviewService
}

func NewTourHandler(tours *services.TourService, reviews *services.ReviewService) *TourHandler {
	return &TourHandler{tours: tours, reviews: reviews}
}

// tourFilter honours the include_secret override for admins only; everyone
// else gets the default visibility rule.
func tourFilter(r *http.Request) repo.TourFilter {
	if r.URL.Query().Get("include_secret") != "true" {
		return repo.TourFilter{}
	}
	u, ok := middleware.CurrentUser(r.Context())
	if !ok || u.Role != models.RoleAdmin {
		return repo.TourFilter{}
	}
	return repo.TourFilter{IncludeSecret: true}
}

func (h *TourHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	tours, err := h.tours.List(r.Context(), tourFilter(r), limit, offset)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tours)
}

func (h *TourHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.tours.Get(r.Context(), chi.URLParam(r, "id"), tourFilter(r))
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

type tourReq struct {
	Name          string             `json:"name" validate:"required"`
	Duration      int                `json:"duration" validate:"required,gt=0"`
	MaxGroupSize  int                `json:"maxGroupSize" validate:"required,gt=0"`
	Difficulty    string             `json:"difficulty" validate:"required,oneof=easy medium difficult"`
	Price         float64            `json:"price" validate:"required,gt=0"`
	PriceDiscount *float64           `json:"priceDiscount,omitempty"`
	Summary       string             `json:"summary" validate:"required"`
	Description   string             `json:"description"`
	ImageCover    string             `json:"imageCover" validate:"required"`
	Images        []string           `json:"images"`
	StartDates    []time.Time        `json:"startDates"`
	Secret        bool               `json:"secretTour"`
	StartLocation *models.Location   `json:"startLocation"`
	Locations     []models.Location  `json:"locations"`
	Guides        []string           `json:"guides" validate:"dive,uuid"`
}

func (h *TourHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req tourReq
	if err := validate.Body(r, &req); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	t := models.Tour{
		Name:          req.Name,
		Duration:      req.Duration,
		MaxGroupSize:  req.MaxGroupSize,
		Difficulty:    models.Difficulty(req.Difficulty),
		Price:         req.Price,
		PriceDiscount: req.PriceDiscount,
		Summary:       req.Summary,
		Description:   req.Description,
		ImageCover:    req.ImageCover,
		Images:        req.Images,
		StartDates:    req.StartDates,
		Secret:        req.Secret,
		StartLocation: req.StartLocation,
		Locations:     req.Locations,
		GuideIDs:      req.Guides,
	}
	out, err := h.tours.Create(r.Context(), t)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, out)
}

type tourUpdateReq struct {
	Name          *string            `json:"name"`
	Duration      *int               `json:"duration"`
	MaxGroupSize  *int               `json:"maxGroupSize"`
	Difficulty    *string            `json:"difficulty"`
	Price         *float64           `json:"price"`
	PriceDiscount *float64           `json:"priceDiscount"`
	Summary       *string            `json:"summary"`
	Description   *string            `json:"description"`
	ImageCover    *string            `json:"imageCover"`
	Images        []string           `json:"images"`
	StartDates    []time.Time        `json:"startDates"`
	Secret        *bool              `json:"secretTour"`
	StartLocation *models.Location   `json:"startLocation"`
	Locations     []models.Location  `json:"locations"`
	Guides        []string           `json:"guides" validate:"dive,uuid"`
}

func (h *TourHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req tourUpdateReq
	if err := validate.Body(r, &req); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	var diff *models.Difficulty
	if req.Difficulty != nil {
		d := models.Difficulty(*req.Difficulty)
		diff = &d
	}
	u := models.TourUpdate{
		Name:          req.Name,
		Duration:      req.Duration,
		MaxGroupSize:  req.MaxGroupSize,
		Difficulty:    diff,
		Price:         req.Price,
		PriceDiscount: req.PriceDiscount,
		Summary:       req.Summary,
		Description:   req.Description,
		ImageCover:    req.ImageCover,
		Images:        req.Images,
		StartDates:    req.StartDates,
		Secret:        req.Secret,
		StartLocation: req.StartLocation,
		Locations:     req.Locations,
		GuideIDs:      req.Guides,
	}
	out, err := h.tours.Update(r.Context(), chi.URLParam(r, "id"), u)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *TourHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.tours.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TourHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	reviews, err := h.reviews.ListByTour(r.Context(), chi.URLParam(r, "id"), limit, offset)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, reviews)
}

type reviewReq struct {
	Review string `json:"review" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}

func (h *TourHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.CurrentUser(r.Context())
	var req reviewReq
	if err := validate.Body(r, &req); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	out, err := h.reviews.Create(r.Context(), chi.URLParam(r, "id"), u.ID, req.Review, req.Rating)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, out)
}
