package storage

import "errors"

var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrEmailAlreadyExists indicates that user with this email already exists
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrProfileNotFound indicates that user profile was not found
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileAlreadyExists indicates that user already has a profile
	ErrProfileAlreadyExists = errors.New("profile already exists")
)
