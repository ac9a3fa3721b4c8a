package security

import "errors"

var (
	// ErrUserExists indicates a create for a username already present.
	ErrUserExists = errors.New("security: user already exists")

	// ErrUserTableFull indicates the fixed-capacity user table is exhausted.
	ErrUserTableFull = errors.New("security: user table full")

	// ErrUnknownUser indicates an authentication attempt for a username
	// that is not registered.
	ErrUnknownUser = errors.New("security: unknown user")

	// ErrBadCredentials indicates a password hash mismatch.
	ErrBadCredentials = errors.New("security: bad credentials")

	// ErrEmptyName rejects empty usernames.
	ErrEmptyName = errors.New("security: empty username")
)
