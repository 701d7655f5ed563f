package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/tours-backend/internal/models"
	repo "github.com/baharkarakas/tours-backend/internal/repository"
)

type toursRepo struct{ pool *pgxpool.Pool }

const tourCols = `id, name, slug, duration, max_group_size, difficulty,
       ratings_average, ratings_quantity, price, price_discount, summary,
       description, image_cover, images, created_at, start_dates, secret,
       start_location, locations, guide_ids`

func scanTour(row pgx.Row) (models.Tour, error) {
	var t models.Tour
	err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &t.Duration, &t.MaxGroupSize, &t.Difficulty,
		&t.RatingsAverage, &t.RatingsQuantity, &t.Price, &t.PriceDiscount,
		&t.Summary, &t.Description, &t.ImageCover, &t.Images, &t.CreatedAt,
		&t.StartDates, &t.Secret, &t.StartLocation, &t.Locations, &t.GuideIDs,
	)
	return t, err
}

func (r *toursRepo) Create(ctx context.Context, t models.Tour) (models.Tour, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	const q = `
INSERT INTO tours (
  id, name, slug, duration, max_group_size, difficulty, ratings_average,
  ratings_quantity, price, price_discount, summary, description, image_cover,
  images, start_dates, secret, start_location, locations, guide_ids
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
RETURNING ` + tourCols
	row := r.pool.QueryRow(ctx, q,
		t.ID, t.Name, t.Slug, t.Duration, t.MaxGroupSize, t.Difficulty,
		t.RatingsAverage, t.RatingsQuantity, t.Price, t.PriceDiscount,
		t.Summary, t.Description, t.ImageCover, t.Images, t.StartDates,
		t.Secret, t.StartLocation, t.Locations, t.GuideIDs,
	)
	out, err := scanTour(row)
	if err != nil {
		return models.Tour{}, mapErr(err, "a tour with this name already exists", "tour not found")
	}
	return out, nil
}

func (r *toursRepo) GetByID(ctx context.Context, id string, f repo.TourFilter) (models.Tour, error) {
	defer timeQuery("tour", "get")()

	q := `SELECT ` + tourCols + ` FROM tours WHERE id=$1`
	if !f.IncludeSecret {
		q += ` AND secret = false`
	}
	t, err := scanTour(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return models.Tour{}, mapErr(err, "", "tour not found")
	}
	if err := r.populateGuides(ctx, []*models.Tour{&t}); err != nil {
		return models.Tour{}, err
	}
	if err := r.populateReviews(ctx, &t); err != nil {
		return models.Tour{}, err
	}
	return t, nil
}

func (r *toursRepo) List(ctx context.Context, f repo.TourFilter, limit, offset int) ([]models.Tour, error) {
	defer timeQuery("tour", "list")()

	q := `SELECT ` + tourCols + ` FROM tours`
	if !f.IncludeSecret {
		q += ` WHERE secret = false`
	}
	q += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Tour
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ptrs := make([]*models.Tour, len(out))
	for i := range out {
		ptrs[i] = &out[i]
	}
	if err := r.populateGuides(ctx, ptrs); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *toursRepo) Update(ctx context.Context, id string, u models.TourUpdate) (models.Tour, error) {
	set := []string{}
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Duration != nil {
		add("duration", *u.Duration)
	}
	if u.MaxGroupSize != nil {
		add("max_group_size", *u.MaxGroupSize)
	}
	if u.Difficulty != nil {
		add("difficulty", *u.Difficulty)
	}
	if u.Price != nil {
		add("price", *u.Price)
	}
	if u.PriceDiscount != nil {
		add("price_discount", *u.PriceDiscount)
	}
	if u.Summary != nil {
		add("summary", *u.Summary)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.ImageCover != nil {
		add("image_cover", *u.ImageCover)
	}
	if u.Images != nil {
		add("images", u.Images)
	}
	if u.StartDates != nil {
		add("start_dates", u.StartDates)
	}
	if u.Secret != nil {
		add("secret", *u.Secret)
	}
	if u.StartLocation != nil {
		add("start_location", u.StartLocation)
	}
	if u.Locations != nil {
		add("locations", u.Locations)
	}
	if u.GuideIDs != nil {
		add("guide_ids", u.GuideIDs)
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id, repo.TourFilter{IncludeSecret: true})
	}

	q := `UPDATE tours SET ` + strings.Join(set, ", ") + ` WHERE id=$1 RETURNING ` + tourCols
	t, err := scanTour(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		return models.Tour{}, mapErr(err, "a tour with this name already exists", "tour not found")
	}
	return t, nil
}

func (r *toursRepo) UpdateRatings(ctx context.Context, id string, quantity int, average float64) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE tours SET ratings_quantity=$2, ratings_average=$3 WHERE id=$1`,
		id, quantity, average,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows, "", "tour not found")
	}
	return nil
}

func (r *toursRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM tours WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows, "", "tour not found")
	}
	return nil
}

// populateGuides resolves guide_ids to their User projection across a batch
// of tours. The projection carries no credential fields.
func (r *toursRepo) populateGuides(ctx context.Context, tours []*models.Tour) error {
	idSet := map[string]struct{}{}
	for _, t := range tours {
		for _, id := range t.GuideIDs {
			idSet[id] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return nil
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, photo, role FROM users WHERE id = ANY($1) AND active = true`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := map[string]models.Guide{}
	for rows.Next() {
		var g models.Guide
		if err := rows.Scan(&g.ID, &g.Name, &g.Email, &g.Photo, &g.Role); err != nil {
			return err
		}
		byID[g.ID] = g
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, t := range tours {
		t.Guides = t.Guides[:0]
		for _, id := range t.GuideIDs {
			if g, ok := byID[id]; ok {
				t.Guides = append(t.Guides, g)
			}
		}
	}
	return nil
}

// populateReviews attaches the tour's reviews with their author projection.
// Only done on single-tour fetches.
func (r *toursRepo) populateReviews(ctx context.Context, t *models.Tour) error {
	rows, err := r.pool.Query(ctx, `
SELECT r.id, r.body, r.rating, r.tour_id, r.user_id, r.created_at,
       u.id, u.name, u.photo
  FROM reviews r
  LEFT JOIN users u ON u.id = r.user_id
 WHERE r.tour_id = $1
 ORDER BY r.created_at DESC`, t.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		rv, err := scanReviewWithAuthor(rows)
		if err != nil {
			return err
		}
		t.Reviews = append(t.Reviews, rv)
	}
	return rows.Err()
}
