package domain

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoActiveProfile = errors.New("no active profile")
	ErrNotLoggedIn     = errors.New("profile is not logged in")
	ErrSecretNotFound  = errors.New("secret not found")
)
