package models

import (
	"strings"
	"time"

	"github.com/baharkarakas/tours-backend/internal/apperr"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}

const DefaultPhoto = "default.jpg"

// User is an account record. Credential and lifecycle fields never appear in
// JSON output; Active is the soft-delete flag (false = deactivated).
type User struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Email                string     `json:"email"`
	Photo                string     `json:"photo"`
	Role                 Role       `json:"role"`
	PasswordHash         string     `json:"-"`
	PasswordChangedAt    *time.Time `json:"-"`
	PasswordResetToken   *string    `json:"-"`
	PasswordResetExpires *time.Time `json:"-"`
	Active               bool       `json:"-"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ChangedPasswordAfter reports whether the password was changed strictly
// after the given token-issue time (unix seconds). A user who never changed
// their password has no PasswordChangedAt and always returns false.
func (u *User) ChangedPasswordAfter(issuedAt int64) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Unix() > issuedAt
}

// NormalizeEmail lowercases and trims an email the way every write and
// lookup path must before touching storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}

// ValidateNewUser checks the signup constraints, including the
// password/passwordConfirm equality rule that only applies at creation.
func ValidateNewUser(name, email, password, passwordConfirm string) error {
	var fields []apperr.FieldError
	if strings.TrimSpace(name) == "" {
		fields = append(fields, apperr.FieldError{Field: "name", Msg: "required"})
	}
	email = NormalizeEmail(email)
	if email == "" {
		fields = append(fields, apperr.FieldError{Field: "email", Msg: "required"})
	} else if !validEmail(email) {
		fields = append(fields, apperr.FieldError{Field: "email", Msg: "must be a valid email address"})
	}
	if len(password) < 8 {
		fields = append(fields, apperr.FieldError{Field: "password", Msg: "must be at least 8 characters"})
	}
	if passwordConfirm != password {
		fields = append(fields, apperr.FieldError{Field: "passwordConfirm", Msg: "passwords are not the same"})
	}
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}
