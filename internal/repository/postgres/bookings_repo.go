package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/tours-backend/internal/models"
)

type bookingsRepo struct{ pool *pgxpool.Pool }

const bookingCols = `id, tour_id, user_id, price, paid, created_at`

func scanBooking(row pgx.Row) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.TourID, &b.UserID, &b.Price, &b.Paid, &b.CreatedAt)
	return b, err
}

func (r *bookingsRepo) Create(ctx context.Context, b models.Booking) (models.Booking, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	out, err := scanBooking(r.pool.QueryRow(ctx, `
INSERT INTO bookings (id, tour_id, user_id, price, paid)
VALUES ($1,$2,$3,$4,$5)
RETURNING `+bookingCols,
		b.ID, b.TourID, b.UserID, b.Price, b.Paid,
	))
	if err != nil {
		return models.Booking{}, mapErr(err, "booking already exists", "booking not found")
	}
	return out, nil
}

func (r *bookingsRepo) GetByID(ctx context.Context, id string) (models.Booking, error) {
	defer timeQuery("booking", "get")()
	b, err := scanBooking(r.pool.QueryRow(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id=$1`, id))
	if err != nil {
		return models.Booking{}, mapErr(err, "", "booking not found")
	}
	return b, nil
}

func (r *bookingsRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Booking, error) {
	defer timeQuery("booking", "list_by_user")()
	return r.list(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE user_id=$3 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset, userID)
}

func (r *bookingsRepo) ListByTour(ctx context.Context, tourID string, limit, offset int) ([]models.Booking, error) {
	defer timeQuery("booking", "list_by_tour")()
	return r.list(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE tour_id=$3 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset, tourID)
}

func (r *bookingsRepo) list(ctx context.Context, q string, limit, offset int, extra ...any) ([]models.Booking, error) {
	args := append([]any{limit, offset}, extra...)
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *bookingsRepo) SetPaid(ctx context.Context, id string, paid bool) error {
	ct, err := r.pool.Exec(ctx, `UPDATE bookings SET paid=$2 WHERE id=$1`, id, paid)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows, "", "booking not found")
	}
	return nil
}

func (r *bookingsRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows, "", "booking not found")
	}
	return nil
}
