package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUserNotFound      = errors.New("user not found")

	// Storage errors
	ErrStoreUnavailable = errors.New("storage backend unavailable")
)
