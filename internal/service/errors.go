package service

import "errors"

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when attempting to register with an existing email.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrAlreadyFavorited is returned when the user already favorited the recipe.
	ErrAlreadyFavorited = errors.New("already favorited")
	// ErrInvalidInput wraps missing or rejected request fields.
	ErrInvalidInput = errors.New("invalid input")
)
