package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the cost the account store was seeded with; lowering it
// would silently produce weaker hashes for new passwords only.
const bcryptCost = 12

func HashPassword(p string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), bcryptCost)
	return string(b), err
}

// VerifyPassword compares in constant time via bcrypt itself.
func VerifyPassword(plain, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
