package auth

import "errors"

var (
	// ErrInvalidToken indicates the token is malformed, its signature does not
	// match or its claims are unusable.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token carried an expiry that has passed.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrHashFailed indicates the password could not be hashed.
	ErrHashFailed = errors.New("failed to hash password")

	// ErrWeakSecret indicates the signing secret is too short to use.
	ErrWeakSecret = errors.New("signing secret is too short")
)
