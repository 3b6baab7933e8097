package util

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost        = 12
	MinPasswordLength = 10
)

var ErrPasswordTooShort = errors.New("password must be at least 10 characters")

// HashPassword produces the bcrypt hash stored in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword checks if a plain text password matches a hashed password
func VerifyPassword(hashedPassword, password string) bool {
	if hashedPassword == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// VerifyCredentials checks an admin username and password pair. The username
// comparison runs in constant time.
func VerifyCredentials(wantUsername, hashedPassword, username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(wantUsername), []byte(username)) == 1
	passOK := VerifyPassword(hashedPassword, password)
	return userOK && passOK
}
