package services

import "errors"

var (
	// ErrNotFound covers missing records and ids pointing nowhere.
	ErrNotFound = errors.New("not found")
	// ErrAccessDenied covers existing records the caller may not touch.
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidInput covers missing or malformed request fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadyExists covers duplicate collaborator additions.
	ErrAlreadyExists = errors.New("already exists")
)
