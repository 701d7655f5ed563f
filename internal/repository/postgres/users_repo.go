package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/tours-backend/internal/models"
	repo "github.com/baharkarakas/tours-backend/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

const userCols = `id, name, email, photo, role, password_hash,
       password_changed_at, password_reset_token, password_reset_expires,
       active, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Photo, &u.Role, &u.PasswordHash,
		&u.PasswordChangedAt, &u.PasswordResetToken, &u.PasswordResetExpires,
		&u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	out, err := scanUser(r.pool.QueryRow(ctx, `
INSERT INTO users (id, name, email, photo, role, password_hash)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING `+userCols,
		u.ID, u.Name, u.Email, u.Photo, u.Role, u.PasswordHash,
	))
	if err != nil {
		return models.User{}, mapErr(err, "an account with this email already exists", "user not found")
	}
	return out, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string, f repo.UserFilter) (models.User, error) {
	defer timeQuery("user", "get")()
	q := `SELECT ` + userCols + ` FROM users WHERE id=$1`
	if !f.IncludeInactive {
		q += ` AND active = true`
	}
	u, err := scanUser(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return models.User{}, mapErr(err, "", "user not found")
	}
	return u, nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string, f repo.UserFilter) (models.User, error) {
	defer timeQuery("user", "get_by_email")()
	q := `SELECT ` + userCols + ` FROM users WHERE email=$1`
	if !f.IncludeInactive {
		q += ` AND active = true`
	}
	u, err := scanUser(r.pool.QueryRow(ctx, q, models.NormalizeEmail(email)))
	if err != nil {
		return models.User{}, mapErr(err, "", "user not found")
	}
	return u, nil
}

func (r *usersRepo) GetByResetDigest(ctx context.Context, digest string) (models.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE password_reset_token=$1 AND active = true`, digest,
	))
	if err != nil {
		return models.User{}, mapErr(err, "", "user not found")
	}
	return u, nil
}

func (r *usersRepo) List(ctx context.Context, f repo.UserFilter, limit, offset int) ([]models.User, error) {
	defer timeQuery("user", "list")()
	q := `SELECT ` + userCols + ` FROM users`
	if !f.IncludeInactive {
		q += ` WHERE active = true`
	}
	q += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) UpdateProfile(ctx context.Context, id string, name, email, photo *string) (models.User, error) {
	set := []string{"updated_at=now()"}
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if name != nil {
		add("name", *name)
	}
	if email != nil {
		add("email", models.NormalizeEmail(*email))
	}
	if photo != nil {
		add("photo", *photo)
	}
	u, err := scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET `+strings.Join(set, ", ")+` WHERE id=$1 RETURNING `+userCols,
		args...,
	))
	if err != nil {
		return models.User{}, mapErr(err, "an account with this email already exists", "user not found")
	}
	return u, nil
}

func (r *usersRepo) SetPassword(ctx context.Context, id, hash string, changedAt *time.Time) error {
	ct, err := r.pool.Exec(ctx, `
UPDATE users
   SET password_hash=$2,
       password_changed_at=COALESCE($3, password_changed_at),
       password_reset_token=NULL,
       password_reset_expires=NULL,
       updated_at=now()
 WHERE id=$1`,
		id, hash, changedAt,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows, "", "user not found")
	}
	return nil
}

func (r *usersRepo) SetResetToken(ctx context.Context, id, digest string, expires time.Time) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE users SET password_reset_token=$2, password_reset_expires=$3, updated_at=now() WHERE id=$1`,
		id, digest, expires,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows, "", "user not found")
	}
	return nil
}

func (r *usersRepo) ClearResetToken(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET password_reset_token=NULL, password_reset_expires=NULL, updated_at=now() WHERE id=$1`, id)
	return err
}

// Deactivate is the soft delete: the row stays for referential integrity of
// reviews and bookings, but default-filtered reads stop returning it.
func (r *usersRepo) Deactivate(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE users SET active=false, updated_at=now() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows, "", "user not found")
	}
	return nil
}
