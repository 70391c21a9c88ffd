// Package domain contains core types for the auth service.
package domain

import "errors"

var (
	// ErrUnauthenticated is the single failure the boundary reports
	// for any missing or invalid credential. Token-level causes are
	// never exposed.
	ErrUnauthenticated = errors.New("not authenticated")

	ErrInvalidCredentials = errors.New("incorrect username or password")
)
