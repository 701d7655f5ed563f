package services

import (
	"context"
	"log/slog"

	"github.com/baharkarakas/tours-backend/internal/metrics"
	"github.com/baharkarakas/tours-backend/internal/models"
	repo "github.com/baharkarakas/tours-backend/internal/repository"
)

// ReviewService owns review writes and the aggregate cascade: every create,
// update or delete ends with a synchronous recompute of the tour's
// ratingsQuantity/ratingsAverage. The recompute is part of the operation, not
// fire-and-forget, but its own failure is logged rather than propagated; the
// triggering write has already committed by then.
type ReviewService struct {
	reviews repo.Reviews
	tours   repo.Tours
	aud     *Auditor
	log     *slog.Logger
}

func NewReviewService(reviews repo.Reviews, tours repo.Tours, aud *Auditor, log *slog.Logger) *ReviewService {
	if log == nil {
		log = slog.Default()
	}
	return &ReviewService{reviews: reviews, tours: tours, aud: aud, log: log}
}

// Create persists a review for (tour, user), at most one per pair enforced
// by the composite unique index, then recomputes the tour's aggregates.
func (s *ReviewService) Create(ctx context.Context, tourID, userID, body string, rating int) (models.Review, error) {
	rv := models.Review{Body: body, Rating: rating, TourID: tourID, UserID: userID}
	if err := models.ValidateNewReview(&rv); err != nil {
		return models.Review{}, err
	}
	// The tour reference must resolve; secret tours are not reviewable
	// through the default visibility rule.
	if _, err := s.tours.GetByID(ctx, tourID, repo.TourFilter{}); err != nil {
		return models.Review{}, err
	}

	out, err := s.reviews.Create(ctx, rv)
	if err != nil {
		return models.Review{}, err
	}
	metrics.ReviewWritesTotal.WithLabelValues("create").Inc()
	s.recompute(ctx, tourID)
	s.aud.Record("review", out.ID, "created", map[string]any{"tour": tourID})
	return out, nil
}

func (s *ReviewService) Get(ctx context.Context, id string) (models.Review, error) {
	return s.reviews.GetByID(ctx, id)
}

func (s *ReviewService) ListByTour(ctx context.Context, tourID string, limit, offset int) ([]models.Review, error) {
	return s.reviews.ListByTour(ctx, tourID, limit, offset)
}

func (s *ReviewService) List(ctx context.Context, limit, offset int) ([]models.Review, error) {
	return s.reviews.List(ctx, limit, offset)
}

// Update stashes the current record before writing so the recompute can use
// its tour reference afterwards, mirroring the delete path.
func (s *ReviewService) Update(ctx context.Context, id string, u models.ReviewUpdate) (models.Review, error) {
	if err := models.ValidateReviewUpdate(&u); err != nil {
		return models.Review{}, err
	}
	stashed, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return models.Review{}, err
	}
	out, err := s.reviews.Update(ctx, id, u)
	if err != nil {
		return models.Review{}, err
	}
	metrics.ReviewWritesTotal.WithLabelValues("update").Inc()
	s.recompute(ctx, stashed.TourID)
	s.aud.Record("review", id, "updated", nil)
	return out, nil
}

// Delete stashes the record first: once the row is gone it can no longer
// supply the tour reference the recompute needs.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	stashed, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	metrics.ReviewWritesTotal.WithLabelValues("delete").Inc()
	s.recompute(ctx, stashed.TourID)
	s.aud.Record("review", id, "deleted", map[string]any{"tour": stashed.TourID})
	return nil
}

// recompute reads the review count and mean rating for the tour and writes
// them back. With zero reviews the tour resets to quantity 0 and the 4.5
// default average, not zero, which would read as a terrible rating.
func (s *ReviewService) recompute(ctx context.Context, tourID string) {
	metrics.RatingRecomputesTotal.Inc()
	count, avg, err := s.reviews.AggregateForTour(ctx, tourID)
	if err != nil {
		metrics.RatingRecomputesFailed.Inc()
		s.log.Error("rating recompute failed", "tour", tourID, "err", err)
		return
	}
	quantity := count
	average := models.DefaultRatingsAverage
	if count > 0 {
		average = models.RoundRating(avg)
	}
	if err := s.tours.UpdateRatings(ctx, tourID, quantity, average); err != nil {
		metrics.RatingRecomputesFailed.Inc()
		s.log.Error("rating recompute failed", "tour", tourID, "err", err)
	}
}
