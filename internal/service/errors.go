package service

import "errors"

// Sentinel errors shared by all services. Handlers translate these into
// HTTP statuses; validation failures wrap ErrValidation so the per-field
// message reaches the client while the class stays matchable.
var (
	ErrValidation            = errors.New("invalid input")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrNotFound              = errors.New("not found")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidTransition     = errors.New("invalid status transition")
)
