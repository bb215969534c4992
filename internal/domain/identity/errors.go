package identity

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrMissingFields      = errors.New("username, email and password are required")
)
