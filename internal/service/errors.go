package service

import "errors"

// Validation failures.
var (
	ErrSignupFieldsRequired = errors.New("name, email and password are required")
	ErrLoginFieldsRequired  = errors.New("email and password are required")
	ErrPasswordTooLong      = errors.New("password must be at most 72 bytes")
)

// Conflicts.
var (
	ErrEmailTaken = errors.New("email already registered")
)

// Authentication failures. ErrInvalidCredentials covers both an unknown email
// and a wrong password.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrSessionInvalid     = errors.New("session invalid")
)
