package service

import (
	"context"
	"strings"

	apikeydomain "github.com/openshelf/openshelf/internal/apikey/domain"
	authdomain "github.com/openshelf/openshelf/internal/auth/domain"
	"github.com/openshelf/openshelf/internal/auth/password"
	"github.com/openshelf/openshelf/internal/clock"
	"github.com/openshelf/openshelf/internal/config"
	"github.com/openshelf/openshelf/internal/token"
	userdomain "github.com/openshelf/openshelf/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Cfg      config.Config
	Clock    clock.Clock
	Codec    *token.Codec
	Users    userdomain.Repository
	APIKeys  apikeydomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	keyPrefix string
	clock     clock.Clock
	codec     *token.Codec
	users     userdomain.Repository
	apiKeys   apikeydomain.Repository
}

func New(p Params) authdomain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("auth.service"),
		keyPrefix: p.Cfg.APIKeyPrefix,
		clock:     p.Clock,
		codec:     p.Codec,
		users:     p.Users,
		apiKeys:   p.APIKeys,
	}
}

// Login verifies the password and issues a fresh token pair. Unknown
// users, inactive users and wrong passwords are indistinguishable to
// the caller.
func (s *Service) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, s.db, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, authdomain.ErrInvalidCredentials
	}
	if !password.Verify(req.Password, user.PasswordHash) {
		return nil, authdomain.ErrInvalidCredentials
	}

	return s.issuePair(user.ID.String())
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*authdomain.TokenPair, error) {
	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		return nil, authdomain.ErrUnauthenticated
	}
	if claims.TokenType != token.TypeRefresh {
		return nil, authdomain.ErrUnauthenticated
	}
	if _, err := claims.UserID(); err != nil {
		return nil, authdomain.ErrUnauthenticated
	}

	return s.issuePair(claims.Subject)
}

func (s *Service) issuePair(subject string) (*authdomain.TokenPair, error) {
	id, err := token.ParseSubject(subject)
	if err != nil {
		return nil, authdomain.ErrUnauthenticated
	}
	access, err := s.codec.IssueAccess(id)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.IssueRefresh(id)
	if err != nil {
		return nil, err
	}
	return &authdomain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

// Authenticate implements the dual-scheme resolution: bearer token
// first, API key second, otherwise unauthenticated. Lookups aside, it
// has no side effects.
func (s *Service) Authenticate(ctx context.Context, creds authdomain.Credentials) (*userdomain.User, error) {
	if bearer := strings.TrimSpace(creds.BearerToken); bearer != "" {
		return s.authenticateBearer(ctx, bearer)
	}
	if apiKey := strings.TrimSpace(creds.APIKey); apiKey != "" {
		return s.authenticateAPIKey(ctx, apiKey)
	}
	return nil, authdomain.ErrUnauthenticated
}

func (s *Service) authenticateBearer(ctx context.Context, bearer string) (*userdomain.User, error) {
	claims, err := s.codec.Decode(bearer)
	if err != nil {
		return nil, authdomain.ErrUnauthenticated
	}
	// Refresh tokens never grant resource access.
	if claims.TokenType != token.TypeAccess {
		return nil, authdomain.ErrUnauthenticated
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, authdomain.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, authdomain.ErrUnauthenticated
	}
	return user, nil
}

func (s *Service) authenticateAPIKey(ctx context.Context, raw string) (*userdomain.User, error) {
	// Keys without the configured prefix are never looked up.
	if !strings.HasPrefix(raw, s.keyPrefix) {
		return nil, authdomain.ErrUnauthenticated
	}

	key, err := s.apiKeys.FindActiveByHash(ctx, s.db, apikeydomain.HashKey(raw))
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, authdomain.ErrUnauthenticated
	}
	if key.ExpiresAt != nil && !key.ExpiresAt.After(s.clock.Now()) {
		return nil, authdomain.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, s.db, key.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, authdomain.ErrUnauthenticated
	}
	return user, nil
}
