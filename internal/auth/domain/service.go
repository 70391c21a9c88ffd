package domain

import (
	"context"

	userdomain "github.com/openshelf/openshelf/internal/user/domain"
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Authenticate resolves the requesting identity from a bearer
	// token or an API key, in that priority order.
	Authenticate(ctx context.Context, creds Credentials) (*userdomain.User, error)
}

type LoginRequest struct {
	Username string
	Password string
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Credentials are the raw header values extracted by the transport.
type Credentials struct {
	BearerToken string
	APIKey      string
}
