package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionFinished = errors.New("session already finished")
	ErrNotSessionOwner = errors.New("session belongs to another user")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Validation errors
	ErrInvalidMode  = errors.New("invalid game mode")
	ErrInvalidEvent = errors.New("invalid event")
)
