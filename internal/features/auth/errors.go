package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password must be at least 8 characters long")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrGoogleNotEnabled   = errors.New("google sign-in is not configured")
	ErrGoogleTokenInvalid = errors.New("google token could not be verified")
)
