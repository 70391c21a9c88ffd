package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, userID snowflake.ID, req CreateRequest) (*SecretResponse, error)
	List(ctx context.Context, userID snowflake.ID) ([]Response, error)
	Revoke(ctx context.Context, userID snowflake.ID, keyID snowflake.ID) error
}

type CreateRequest struct {
	Name      string
	ExpiresAt *time.Time
}

type Response struct {
	ID        snowflake.ID `json:"id"`
	Name      string       `json:"name"`
	IsActive  bool         `json:"is_active"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt *time.Time   `json:"expires_at"`
}

// SecretResponse carries the raw key exactly once, at creation time.
type SecretResponse struct {
	ID        snowflake.ID `json:"id"`
	Name      string       `json:"name"`
	APIKey    string       `json:"api_key"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt *time.Time   `json:"expires_at"`
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrNotFound    = errors.New("api key not found")
)
