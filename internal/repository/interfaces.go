package repository

import (
	"context"
	"time"

	"github.com/baharkarakas/tours-backend/internal/models"
)

// TourFilter controls the default visibility rule on find-shaped tour
// queries. The zero value excludes secret tours; callers opt in explicitly.
type TourFilter struct {
	IncludeSecret bool
}

// UserFilter is the soft-delete visibility rule: the zero value excludes
// deactivated accounts.
type UserFilter struct {
	IncludeInactive bool
}

type Tours interface {
	Create(ctx context.Context, t models.Tour) (models.Tour, error)
	// GetByID populates guides and the tour's reviews.
	GetByID(ctx context.Context, id string, f TourFilter) (models.Tour, error)
	// List populates guides but not reviews, to bound payload size.
	List(ctx context.Context, f TourFilter, limit, offset int) ([]models.Tour, error)
	Update(ctx context.Context, id string, u models.TourUpdate) (models.Tour, error)
	UpdateRatings(ctx context.Context, id string, quantity int, average float64) error
	Delete(ctx context.Context, id string) error
}

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string, f UserFilter) (models.User, error)
	GetByEmail(ctx context.Context, email string, f UserFilter) (models.User, error)
	GetByResetDigest(ctx context.Context, digest string) (models.User, error)
	List(ctx context.Context, f UserFilter, limit, offset int) ([]models.User, error)
	UpdateProfile(ctx context.Context, id string, name, email, photo *string) (models.User, error)
	// SetPassword stores a new hash, stamps password_changed_at when given,
	// and clears any outstanding reset token.
	SetPassword(ctx context.Context, id, hash string, changedAt *time.Time) error
	SetResetToken(ctx context.Context, id, digest string, expires time.Time) error
	ClearResetToken(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
}

type Reviews interface {
	Create(ctx context.Context, r models.Review) (models.Review, error)
	GetByID(ctx context.Context, id string) (models.Review, error)
	ListByTour(ctx context.Context, tourID string, limit, offset int) ([]models.Review, error)
	List(ctx context.Context, limit, offset int) ([]models.Review, error)
	Update(ctx context.Context, id string, u models.ReviewUpdate) (models.Review, error)
	Delete(ctx context.Context, id string) error
	// AggregateForTour returns the review count and mean rating for a tour.
	AggregateForTour(ctx context.Context, tourID string) (count int, avg float64, err error)
}

type Bookings interface {
	Create(ctx context.Context, b models.Booking) (models.Booking, error)
	GetByID(ctx context.Context, id string) (models.Booking, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Booking, error)
	ListByTour(ctx context.Context, tourID string, limit, offset int) ([]models.Booking, error)
	SetPaid(ctx context.Context, id string, paid bool) error
	Delete(ctx context.Context, id string) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
