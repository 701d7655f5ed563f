package services

import (
	"context"
	"strings"

	"github.com/baharkarakas/tours-backend/internal/models"
	repo "github.com/baharkarakas/tours-backend/internal/repository"
	"github.com/baharkarakas/tours-backend/internal/slug"
)

// TourService holds the tour lifecycle: creation-time validation and slug
// derivation, partial updates, and the explicit visibility filter on reads.
// The former schema hooks live here as ordinary sequential code.
type TourService struct {
	tours repo.Tours
	aud   *Auditor
}

func NewTourService(tours repo.Tours, aud *Auditor) *TourService {
	return &TourService{tours: tours, aud: aud}
}

// Create validates every creation constraint (including priceDiscount <
// price, which is a creation-only rule), derives the slug from the name and
// persists. The slug is never recomputed after this point.
func (s *TourService) Create(ctx context.Context, t models.Tour) (models.Tour, error) {
	t.Name = strings.TrimSpace(t.Name)
	if err := models.ValidateNewTour(&t); err != nil {
		return models.Tour{}, err
	}
	t.Slug = slug.Make(t.Name)
	if t.RatingsAverage == 0 {
		t.RatingsAverage = models.DefaultRatingsAverage
	}
	t.SetRatingsAverage(t.RatingsAverage)
	t.RatingsQuantity = 0

	out, err := s.tours.Create(ctx, t)
	if err != nil {
		return models.Tour{}, err
	}
	s.aud.Record("tour", out.ID, "created", nil)
	return out, nil
}

// Update applies a partial change set. Changed fields are revalidated against
// their own constraints only: the slug stays as derived at creation, and the
// priceDiscount < price rule is deliberately not re-checked here.
func (s *TourService) Update(ctx context.Context, id string, u models.TourUpdate) (models.Tour, error) {
	if err := models.ValidateTourUpdate(&u); err != nil {
		return models.Tour{}, err
	}
	out, err := s.tours.Update(ctx, id, u)
	if err != nil {
		return models.Tour{}, err
	}
	s.aud.Record("tour", id, "updated", nil)
	return out, nil
}

func (s *TourService) Get(ctx context.Context, id string, f repo.TourFilter) (models.Tour, error) {
	return s.tours.GetByID(ctx, id, f)
}

func (s *TourService) List(ctx context.Context, f repo.TourFilter, limit, offset int) ([]models.Tour, error) {
	return s.tours.List(ctx, f, limit, offset)
}

// Delete removes the tour. Its reviews are intentionally left in place.
func (s *TourService) Delete(ctx context.Context, id string) error {
	if err := s.tours.Delete(ctx, id); err != nil {
		return err
	}
	s.aud.Record("tour", id, "deleted", nil)
	return nil
}
