package services

import (
	"context"
	"fmt"
	"time"

	"github.com/baharkarakas/tours-backend/internal/apperr"
	"github.com/baharkarakas/tours-backend/internal/models"
	repo "github.com/baharkarakas/tours-backend/internal/repository"
)

// In-memory repository fakes. They mirror the Postgres behavior the services
// rely on: uuid-less sequential IDs, unique-constraint conflicts, the default
// visibility filters and the aggregate query.

type fakeTours struct {
	seq   int
	tours map[string]models.Tour

	ratingsErr error // forced failure for UpdateRatings
}

func newFakeTours() *fakeTours {
	return &fakeTours{tours: map[string]models.Tour{}}
}

func (f *fakeTours) Create(_ context.Context, t models.Tour) (models.Tour, error) {
	for _, existing := range f.tours {
		if existing.Name == t.Name {
			return models.Tour{}, apperr.Conflict("tour already exists")
		}
	}
	f.seq++
	t.ID = fmt.Sprintf("tour-%d", f.seq)
	t.CreatedAt = time.Now()
	f.tours[t.ID] = t
	return t, nil
}

func (f *fakeTours) GetByID(_ context.Context, id string, flt repo.TourFilter) (models.Tour, error) {
	t, ok := f.tours[id]
	if !ok || (t.Secret && !flt.IncludeSecret) {
		return models.Tour{}, apperr.NotFound("tour not found")
	}
	return t, nil
}

func (f *fakeTours) List(_ context.Context, flt repo.TourFilter, limit, offset int) ([]models.Tour, error) {
	var out []models.Tour
	for _, t := range f.tours {
		if t.Secret && !flt.IncludeSecret {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTours) Update(_ context.Context, id string, u models.TourUpdate) (models.Tour, error) {
	t, ok := f.tours[id]
	if !ok {
		return models.Tour{}, apperr.NotFound("tour not found")
	}
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Duration != nil {
		t.Duration = *u.Duration
	}
	if u.Price != nil {
		t.Price = *u.Price
	}
	if u.PriceDiscount != nil {
		t.PriceDiscount = u.PriceDiscount
	}
	if u.Secret != nil {
		t.Secret = *u.Secret
	}
	f.tours[id] = t
	return t, nil
}

func (f *fakeTours) UpdateRatings(_ context.Context, id string, quantity int, average float64) error {
	if f.ratingsErr != nil {
		return f.ratingsErr
	}
	t, ok := f.tours[id]
	if !ok {
		return apperr.NotFound("tour not found")
	}
	t.RatingsQuantity = quantity
	t.RatingsAverage = average
	f.tours[id] = t
	return nil
}

func (f *fakeTours) Delete(_ context.Context, id string) error {
	if _, ok := f.tours[id]; !ok {
		return apperr.NotFound("tour not found")
	}
	delete(f.tours, id)
	return nil
}

type fakeUsers struct {
	seq   int
	users map[string]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u models.User) (models.User, error) {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return models.User{}, apperr.Conflict("email already in use")
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("user-%d", f.seq)
	u.Active = true
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string, flt repo.UserFilter) (models.User, error) {
	u, ok := f.users[id]
	if !ok || (!u.Active && !flt.IncludeInactive) {
		return models.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string, flt repo.UserFilter) (models.User, error) {
	email = models.NormalizeEmail(email)
	for _, u := range f.users {
		if u.Email == email {
			if !u.Active && !flt.IncludeInactive {
				break
			}
			return u, nil
		}
	}
	return models.User{}, apperr.NotFound("user not found")
}

func (f *fakeUsers) GetByResetDigest(_ context.Context, digest string) (models.User, error) {
	for _, u := range f.users {
		if u.Active && u.PasswordResetToken != nil && *u.PasswordResetToken == digest {
			return u, nil
		}
	}
	return models.User{}, apperr.NotFound("user not found")
}

func (f *fakeUsers) List(_ context.Context, flt repo.UserFilter, limit, offset int) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if !u.Active && !flt.IncludeInactive {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id string, name, email, photo *string) (models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return models.User{}, apperr.NotFound("user not found")
	}
	if name != nil {
		u.Name = *name
	}
	if email != nil {
		u.Email = *email
	}
	if photo != nil {
		u.Photo = *photo
	}
	f.users[id] = u
	return u, nil
}

func (f *fakeUsers) SetPassword(_ context.Context, id, hash string, changedAt *time.Time) error {
	u, ok := f.users[id]
	if !ok {
		return apperr.NotFound("user not found")
	}
	u.PasswordHash = hash
	if changedAt != nil {
		u.PasswordChangedAt = changedAt
	}
	u.PasswordResetToken = nil
	u.PasswordResetExpires = nil
	f.users[id] = u
	return nil
}

func (f *fakeUsers) SetResetToken(_ context.Context, id, digest string, expires time.Time) error {
	u, ok := f.users[id]
	if !ok {
		return apperr.NotFound("user not found")
	}
	u.PasswordResetToken = &digest
	u.PasswordResetExpires = &expires
	f.users[id] = u
	return nil
}

func (f *fakeUsers) ClearResetToken(_ context.Context, id string) error {
	u, ok := f.users[id]
	if !ok {
		return apperr.NotFound("user not found")
	}
	u.PasswordResetToken = nil
	u.PasswordResetExpires = nil
	f.users[id] = u
	return nil
}

func (f *fakeUsers) Deactivate(_ context.Context, id string) error {
	u, ok := f.users[id]
	if !ok {
		return apperr.NotFound("user not found")
	}
	u.Active = false
	f.users[id] = u
	return nil
}

type fakeReviews struct {
	seq     int
	reviews map[string]models.Review

	aggregateErr error // forced failure for AggregateForTour
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{reviews: map[string]models.Review{}}
}

func (f *fakeReviews) Create(_ context.Context, r models.Review) (models.Review, error) {
	for _, existing := range f.reviews {
		if existing.TourID == r.TourID && existing.UserID == r.UserID {
			return models.Review{}, apperr.Conflict("user has already reviewed this tour")
		}
	}
	f.seq++
	r.ID = fmt.Sprintf("review-%d", f.seq)
	r.CreatedAt = time.Now()
	f.reviews[r.ID] = r
	return r, nil
}

func (f *fakeReviews) GetByID(_ context.Context, id string) (models.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return models.Review{}, apperr.NotFound("review not found")
	}
	return r, nil
}

func (f *fakeReviews) ListByTour(_ context.Context, tourID string, limit, offset int) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.TourID == tourID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviews) List(_ context.Context, limit, offset int) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReviews) Update(_ context.Context, id string, u models.ReviewUpdate) (models.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return models.Review{}, apperr.NotFound("review not found")
	}
	if u.Body != nil {
		r.Body = *u.Body
	}
	if u.Rating != nil {
		r.Rating = *u.Rating
	}
	f.reviews[id] = r
	return r, nil
}

func (f *fakeReviews) Delete(_ context.Context, id string) error {
	if _, ok := f.reviews[id]; !ok {
		return apperr.NotFound("review not found")
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviews) AggregateForTour(_ context.Context, tourID string) (int, float64, error) {
	if f.aggregateErr != nil {
		return 0, 0, f.aggregateErr
	}
	var count int
	var sum float64
	for _, r := range f.reviews {
		if r.TourID == tourID {
			count++
			sum += float64(r.Rating)
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return count, sum / float64(count), nil
}

type fakeBookings struct {
	seq      int
	bookings map[string]models.Booking
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{bookings: map[string]models.Booking{}}
}

func (f *fakeBookings) Create(_ context.Context, b models.Booking) (models.Booking, error) {
	f.seq++
	b.ID = fmt.Sprintf("booking-%d", f.seq)
	b.CreatedAt = time.Now()
	f.bookings[b.ID] = b
	return b, nil
}

func (f *fakeBookings) GetByID(_ context.Context, id string) (models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return models.Booking{}, apperr.NotFound("booking not found")
	}
	return b, nil
}

func (f *fakeBookings) ListByUser(_ context.Context, userID string, limit, offset int) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) ListByTour(_ context.Context, tourID string, limit, offset int) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.TourID == tourID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) SetPaid(_ context.Context, id string, paid bool) error {
	b, ok := f.bookings[id]
	if !ok {
		return apperr.NotFound("booking not found")
	}
	b.Paid = paid
	f.bookings[id] = b
	return nil
}

func (f *fakeBookings) Delete(_ context.Context, id string) error {
	if _, ok := f.bookings[id]; !ok {
		return apperr.NotFound("booking not found")
	}
	delete(f.bookings, id)
	return nil
}

var (
	_ repo.Tours    = (*fakeTours)(nil)
	_ repo.Users    = (*fakeUsers)(nil)
	_ repo.Reviews  = (*fakeReviews)(nil)
	_ repo.Bookings = (*fakeBookings)(nil)
)
