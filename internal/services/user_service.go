package services

import (
	"context"
	"time"

	"github.com/baharkarakas/tours-backend/internal/apperr"
	"github.com/baharkarakas/tours-backend/internal/auth"
	"github.com/baharkarakas/tours-backend/internal/models"
	repo "github.com/baharkarakas/tours-backend/internal/repository"
)

// UserService owns the account lifecycle: signup, authentication, password
// change with the one-second backdate, reset tokens and soft deletion.
type UserService struct {
	users repo.Users
	tm    *auth.TokenManager
	aud   *Auditor
	now   func() time.Time
}

func NewUserService(users repo.Users, tm *auth.TokenManager, aud *Auditor) *UserService {
	return &UserService{users: users, tm: tm, aud: aud, now: time.Now}
}

// Register creates an account with role "user". passwordConfirm is validated
// equal to password and then discarded; only the bcrypt hash is persisted.
func (s *UserService) Register(ctx context.Context, name, email, password, passwordConfirm string) (models.User, error) {
	if err := models.ValidateNewUser(name, email, password, passwordConfirm); err != nil {
		return models.User{}, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u := models.User{
		Name:         name,
		Email:        models.NormalizeEmail(email),
		Photo:        models.DefaultPhoto,
		Role:         models.RoleUser,
		PasswordHash: hash,
	}
	out, err := s.users.Create(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	s.aud.Record("user", out.ID, "registered", nil)
	return out, nil
}

// Authenticate verifies credentials against an active account and issues an
// access token. The error is the same for unknown email and wrong password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, string, error) {
	u, err := s.users.GetByEmail(ctx, email, repo.UserFilter{})
	if err != nil {
		return models.User{}, "", apperr.Auth("incorrect email or password")
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return models.User{}, "", apperr.Auth("incorrect email or password")
	}
	token, _, err := s.tm.Generate(u.ID, u.Role)
	if err != nil {
		return models.User{}, "", err
	}
	return u, token, nil
}

// ChangePassword verifies the current password, re-hashes the new one and
// stamps passwordChangedAt one second in the past, so a token issued in the
// same clock tick as the change still counts as issued after it.
func (s *UserService) ChangePassword(ctx context.Context, userID, current, newPassword, newConfirm string) error {
	u, err := s.users.GetByID(ctx, userID, repo.UserFilter{})
	if err != nil {
		return err
	}
	if err := auth.VerifyPassword(current, u.PasswordHash); err != nil {
		return apperr.Auth("current password is incorrect")
	}
	return s.setPassword(ctx, u.ID, newPassword, newConfirm)
}

func (s *UserService) setPassword(ctx context.Context, userID, password, confirm string) error {
	var fields []apperr.FieldError
	if len(password) < 8 {
		fields = append(fields, apperr.FieldError{Field: "password", Msg: "must be at least 8 characters"})
	}
	if confirm != password {
		fields = append(fields, apperr.FieldError{Field: "passwordConfirm", Msg: "passwords are not the same"})
	}
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	changedAt := s.now().Add(-time.Second)
	if err := s.users.SetPassword(ctx, userID, hash, &changedAt); err != nil {
		return err
	}
	s.aud.Record("user", userID, "password_changed", nil)
	return nil
}

// RequestPasswordReset issues a one-time token. The plaintext token is
// returned to the caller (for delivery out of band); only its SHA-256 digest
// and a 10-minute expiry are persisted.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email, repo.UserFilter{})
	if err != nil {
		return "", err
	}
	token, digest, err := auth.NewResetToken()
	if err != nil {
		return "", err
	}
	expires := s.now().Add(auth.ResetTokenTTLMinutes * time.Minute)
	if err := s.users.SetResetToken(ctx, u.ID, digest, expires); err != nil {
		return "", err
	}
	s.aud.Record("user", u.ID, "reset_requested", nil)
	return token, nil
}

// ResetPassword accepts a presented token only if its digest matches the
// stored one and the expiry has not passed, then runs the password-change
// path (hash, backdate, clear token).
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword, newConfirm string) error {
	u, err := s.users.GetByResetDigest(ctx, auth.DigestResetToken(token))
	if err != nil {
		return apperr.Auth("token is invalid or has expired")
	}
	if u.PasswordResetToken == nil || !auth.MatchResetToken(token, *u.PasswordResetToken) {
		return apperr.Auth("token is invalid or has expired")
	}
	if u.PasswordResetExpires == nil || !s.now().Before(*u.PasswordResetExpires) {
		return apperr.Auth("token is invalid or has expired")
	}
	return s.setPassword(ctx, u.ID, newPassword, newConfirm)
}

func (s *UserService) Get(ctx context.Context, id string, f repo.UserFilter) (models.User, error) {
	return s.users.GetByID(ctx, id, f)
}

func (s *UserService) List(ctx context.Context, f repo.UserFilter, limit, offset int) ([]models.User, error) {
	return s.users.List(ctx, f, limit, offset)
}

// UpdateProfile changes name/email/photo only. Password updates must go
// through ChangePassword or ResetPassword; this path never touches them.
func (s *UserService) UpdateProfile(ctx context.Context, id string, name, email, photo *string) (models.User, error) {
	if email != nil {
		e := models.NormalizeEmail(*email)
		email = &e
	}
	u, err := s.users.UpdateProfile(ctx, id, name, email, photo)
	if err != nil {
		return models.User{}, err
	}
	s.aud.Record("user", id, "profile_updated", nil)
	return u, nil
}

// Deactivate soft-deletes the account: active=false, record kept so existing
// reviews and bookings stay referentially intact.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	if err := s.users.Deactivate(ctx, id); err != nil {
		return err
	}
	s.aud.Record("user", id, "deactivated", nil)
	return nil
}
