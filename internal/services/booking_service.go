package services

import (
	"context"

	"github.com/baharkarakas/tours-backend/internal/models"
	repo "github.com/baharkarakas/tours-backend/internal/repository"
)

// BookingService records bookings with the tour's price snapshotted at
// booking time. Checkout-session creation against a payment provider sits
// behind this boundary and is not part of this service.
type BookingService struct {
	bookings repo.Bookings
	tours    repo.Tours
	aud      *Auditor
}

func NewBookingService(bookings repo.Bookings, tours repo.Tours, aud *Auditor) *BookingService {
	return &BookingService{bookings: bookings, tours: tours, aud: aud}
}

func (s *BookingService) Create(ctx context.Context, tourID, userID string) (models.Booking, error) {
	t, err := s.tours.GetByID(ctx, tourID, repo.TourFilter{})
	if err != nil {
		return models.Booking{}, err
	}
	price := t.Price
	if t.PriceDiscount != nil {
		price = *t.PriceDiscount
	}
	b := models.Booking{TourID: tourID, UserID: userID, Price: price, Paid: true}
	out, err := s.bookings.Create(ctx, b)
	if err != nil {
		return models.Booking{}, err
	}
	s.aud.Record("booking", out.ID, "created", map[string]any{"tour": tourID})
	return out, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (models.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Booking, error) {
	return s.bookings.ListByUser(ctx, userID, limit, offset)
}

func (s *BookingService) ListByTour(ctx context.Context, tourID string, limit, offset int) ([]models.Booking, error) {
	return s.bookings.ListByTour(ctx, tourID, limit, offset)
}

func (s *BookingService) MarkPaid(ctx context.Context, id string, paid bool) error {
	if err := s.bookings.SetPaid(ctx, id, paid); err != nil {
		return err
	}
	s.aud.Record("booking", id, "paid_updated", nil)
	return nil
}

func (s *BookingService) Delete(ctx context.Context, id string) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}
	s.aud.Record("booking", id, "deleted", nil)
	return nil
}
