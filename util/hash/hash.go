package hash

import "golang.org/x/crypto/bcrypt"

// Password hashes a plaintext password. Every write path that accepts a
// new password goes through here; nothing rehashes implicitly.
func Password(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func Check(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
