package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/tours-backend/internal/models"
)

type reviewsRepo struct{ pool *pgxpool.Pool }

const reviewSelect = `
SELECT r.id, r.body, r.rating, r.tour_id, r.user_id, r.created_at,
       u.id, u.name, u.photo
  FROM reviews r
  LEFT JOIN users u ON u.id = r.user_id`

// scanReviewWithAuthor reads a review row joined with its author projection.
// The author side may be NULL when the account has been removed.
func scanReviewWithAuthor(row pgx.Row) (models.Review, error) {
	var rv models.Review
	var aID, aName, aPhoto *string
	err := row.Scan(&rv.ID, &rv.Body, &rv.Rating, &rv.TourID, &rv.UserID, &rv.CreatedAt, &aID, &aName, &aPhoto)
	if err != nil {
		return models.Review{}, err
	}
	if aID != nil {
		author := models.ReviewAuthor{ID: *aID}
		if aName != nil {
			author.Name = *aName
		}
		if aPhoto != nil {
			author.Photo = *aPhoto
		}
		rv.Author = &author
	}
	return rv, nil
}

func (r *reviewsRepo) Create(ctx context.Context, rv models.Review) (models.Review, error) {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, `
INSERT INTO reviews (id, body, rating, tour_id, user_id)
VALUES ($1,$2,$3,$4,$5)
RETURNING id, body, rating, tour_id, user_id, created_at`,
		rv.ID, rv.Body, rv.Rating, rv.TourID, rv.UserID,
	).Scan(&rv.ID, &rv.Body, &rv.Rating, &rv.TourID, &rv.UserID, &rv.CreatedAt)
	if err != nil {
		return models.Review{}, mapErr(err, "you have already reviewed this tour", "review not found")
	}
	return rv, nil
}

func (r *reviewsRepo) GetByID(ctx context.Context, id string) (models.Review, error) {
	defer timeQuery("review", "get")()
	rv, err := scanReviewWithAuthor(r.pool.QueryRow(ctx, reviewSelect+` WHERE r.id=$1`, id))
	if err != nil {
		return models.Review{}, mapErr(err, "", "review not found")
	}
	return rv, nil
}

func (r *reviewsRepo) ListByTour(ctx context.Context, tourID string, limit, offset int) ([]models.Review, error) {
	defer timeQuery("review", "list_by_tour")()
	return r.list(ctx, reviewSelect+` WHERE r.tour_id=$3 ORDER BY r.created_at DESC LIMIT $1 OFFSET $2`, limit, offset, tourID)
}

func (r *reviewsRepo) List(ctx context.Context, limit, offset int) ([]models.Review, error) {
	defer timeQuery("review", "list")()
	return r.list(ctx, reviewSelect+` ORDER BY r.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *reviewsRepo) list(ctx context.Context, q string, limit, offset int, extra ...any) ([]models.Review, error) {
	args := append([]any{limit, offset}, extra...)
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Review
	for rows.Next() {
		rv, err := scanReviewWithAuthor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *reviewsRepo) Update(ctx context.Context, id string, u models.ReviewUpdate) (models.Review, error) {
	set := []string{}
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if u.Body != nil {
		add("body", *u.Body)
	}
	if u.Rating != nil {
		add("rating", *u.Rating)
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	var rv models.Review
	err := r.pool.QueryRow(ctx,
		`UPDATE reviews SET `+strings.Join(set, ", ")+` WHERE id=$1
		 RETURNING id, body, rating, tour_id, user_id, created_at`,
		args...,
	).Scan(&rv.ID, &rv.Body, &rv.Rating, &rv.TourID, &rv.UserID, &rv.CreatedAt)
	if err != nil {
		return models.Review{}, mapErr(err, "", "review not found")
	}
	return rv, nil
}

func (r *reviewsRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows, "", "review not found")
	}
	return nil
}

func (r *reviewsRepo) AggregateForTour(ctx context.Context, tourID string) (int, float64, error) {
	var count int
	var avg float64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM reviews WHERE tour_id=$1`,
		tourID,
	).Scan(&count, &avg)
	return count, avg, err
}
