package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/tours-backend/internal/apperr"
	"github.com/baharkarakas/tours-backend/internal/auth"
	"github.com/baharkarakas/tours-backend/internal/models"
	repo "github.com/baharkarakas/tours-backend/internal/repository"
)

func newUserService(users *fakeUsers) *UserService {
	tm := auth.NewTokenManager("test-secret", "tours-backend", time.Hour)
	return NewUserService(users, tm, nil)
}

func TestRegister(t *testing.T) {
	users := newFakeUsers()
	svc := newUserService(users)

	out, err := svc.Register(context.Background(), "Ada Lovelace", "  Ada@Example.COM ", "pass1234", "pass1234")
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", out.Email)
	assert.Equal(t, models.RoleUser, out.Role)
	assert.Equal(t, models.DefaultPhoto, out.Photo)
	assert.True(t, out.Active)

	// Only the hash is stored, and it verifies against the plaintext.
	assert.NotEqual(t, "pass1234", out.PasswordHash)
	assert.NoError(t, auth.VerifyPassword("pass1234", out.PasswordHash))
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc := newUserService(newFakeUsers())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada Lovelace", "ada@example.com", "pass1234", "pass1234")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Impostor", "ADA@example.com", "pass1234", "pass1234")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRegisterConfirmMismatch(t *testing.T) {
	svc := newUserService(newFakeUsers())
	_, err := svc.Register(context.Background(), "Ada Lovelace", "ada@example.com", "pass1234", "pass12345")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAuthenticate(t *testing.T) {
	svc := newUserService(newFakeUsers())
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Ada Lovelace", "ada@example.com", "pass1234", "pass1234")
	require.NoError(t, err)

	u, token, err := svc.Authenticate(ctx, "Ada@Example.com", "pass1234")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	assert.NotEmpty(t, token)

	// Unknown email and wrong password produce the same error.
	_, _, errEmail := svc.Authenticate(ctx, "nobody@example.com", "pass1234")
	_, _, errPass := svc.Authenticate(ctx, "ada@example.com", "wrong-pass")
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(errEmail))
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(errPass))
	assert.Equal(t, errEmail.Error(), errPass.Error())
}

func TestChangePasswordBackdatesOneSecond(t *testing.T) {
	users := newFakeUsers()
	svc := newUserService(users)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada Lovelace", "ada@example.com", "pass1234", "pass1234")
	require.NoError(t, err)

	frozen := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }

	require.NoError(t, svc.ChangePassword(ctx, u.ID, "pass1234", "newpass99", "newpass99"))

	stored, err := users.GetByID(ctx, u.ID, repo.UserFilter{})
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordChangedAt)
	assert.Equal(t, frozen.Add(-time.Second), *stored.PasswordChangedAt)

	// A token issued in the same second as the change stays valid.
	assert.False(t, stored.ChangedPasswordAfter(frozen.Unix()))
	// A token issued before the change does not.
	assert.True(t, stored.ChangedPasswordAfter(frozen.Add(-time.Minute).Unix()))

	_, _, err = svc.Authenticate(ctx, "ada@example.com", "newpass99")
	assert.NoError(t, err)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc := newUserService(newFakeUsers())
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada Lovelace", "ada@example.com", "pass1234", "pass1234")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, u.ID, "wrong-pass", "newpass99", "newpass99")
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
}

func TestResetPasswordRoundTrip(t *testing.T) {
	users := newFakeUsers()
	svc := newUserService(users)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada Lovelace", "ada@example.com", "pass1234", "pass1234")
	require.NoError(t, err)

	token, err := svc.RequestPasswordReset(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The stored value is the digest, never the plaintext token.
	stored, err := users.GetByID(ctx, u.ID, repo.UserFilter{})
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordResetToken)
	assert.NotEqual(t, token, *stored.PasswordResetToken)
	assert.Equal(t, auth.DigestResetToken(token), *stored.PasswordResetToken)

	require.NoError(t, svc.ResetPassword(ctx, token, "newpass99", "newpass99"))

	// Token is single-use: the reset cleared it.
	stored, err = users.GetByID(ctx, u.ID, repo.UserFilter{})
	require.NoError(t, err)
	assert.Nil(t, stored.PasswordResetToken)
	require.NotNil(t, stored.PasswordChangedAt)

	_, _, err = svc.Authenticate(ctx, "ada@example.com", "newpass99")
	assert.NoError(t, err)

	err = svc.ResetPassword(ctx, token, "another99", "another99")
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc := newUserService(newFakeUsers())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada Lovelace", "ada@example.com", "pass1234", "pass1234")
	require.NoError(t, err)

	token, err := svc.RequestPasswordReset(ctx, "ada@example.com")
	require.NoError(t, err)

	// Jump past the 10-minute window.
	svc.now = func() time.Time {
		return time.Now().Add((auth.ResetTokenTTLMinutes + 1) * time.Minute)
	}
	err = svc.ResetPassword(ctx, token, "newpass99", "newpass99")
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
}

func TestResetPasswordBogusToken(t *testing.T) {
	svc := newUserService(newFakeUsers())
	err := svc.ResetPassword(context.Background(), "no-such-token", "newpass99", "newpass99")
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
}

func TestDeactivateHidesAccount(t *testing.T) {
	users := newFakeUsers()
	svc := newUserService(users)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada Lovelace", "ada@example.com", "pass1234", "pass1234")
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, u.ID))

	// Default-filtered reads miss the account; login fails with the
	// generic credentials error.
	_, err = svc.Get(ctx, u.ID, repo.UserFilter{})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	_, _, err = svc.Authenticate(ctx, "ada@example.com", "pass1234")
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))

	// The record itself survives for admin-level reads.
	got, err := svc.Get(ctx, u.ID, repo.UserFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestUpdateProfileNormalizesEmail(t *testing.T) {
	svc := newUserService(newFakeUsers())
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada Lovelace", "ada@example.com", "pass1234", "pass1234")
	require.NoError(t, err)

	email := "  Ada.New@Example.COM "
	out, err := svc.UpdateProfile(ctx, u.ID, nil, &email, nil)
	require.NoError(t, err)
	assert.Equal(t, "ada.new@example.com", out.Email)
}
