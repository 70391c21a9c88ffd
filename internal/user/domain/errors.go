package domain

import "errors"

var (
	ErrNotFound        = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrRoleNotFound    = errors.New("role not found")
	ErrInvalidUsername = errors.New("invalid_username")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidPassword = errors.New("invalid_password")
	ErrInvalidFullName = errors.New("invalid_full_name")

	// ErrMemberRoleMissing means the seeder has not run; this is a
	// deployment fault, not a user-facing condition.
	ErrMemberRoleMissing = errors.New("default member role not found, run the seeder")
)
