package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChangedPasswordAfter(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	u := &User{}
	assert.False(t, u.ChangedPasswordAfter(issued.Unix()), "no change on record")

	changed := issued.Add(time.Hour)
	u.PasswordChangedAt = &changed
	assert.True(t, u.ChangedPasswordAfter(issued.Unix()), "changed after issue")

	changed = issued
	assert.False(t, u.ChangedPasswordAfter(issued.Unix()), "same second is not after")

	changed = issued.Add(-time.Second)
	assert.False(t, u.ChangedPasswordAfter(issued.Unix()), "changed before issue")
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
}

func TestValidateNewUserOK(t *testing.T) {
	assert.NoError(t, ValidateNewUser("Ada Lovelace", "ada@example.com", "pass1234", "pass1234"))
}

func TestValidateNewUserViolations(t *testing.T) {
	err := ValidateNewUser("", "not-an-email", "short", "different")
	assert.ElementsMatch(t,
		[]string{"name", "email", "password", "passwordConfirm"},
		fieldNames(t, err))
}

func TestValidateNewUserConfirmMismatch(t *testing.T) {
	err := ValidateNewUser("Ada Lovelace", "ada@example.com", "pass1234", "pass12345")
	assert.Equal(t, []string{"passwordConfirm"}, fieldNames(t, err))
}
