// Package token issues and verifies the signed bearer tokens used for
// resource access and refresh.
package token

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	"github.com/openshelf/openshelf/internal/clock"
	"github.com/openshelf/openshelf/internal/config"
	"go.uber.org/fx"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrInvalidToken covers signature mismatch, malformed structure and
// expiry alike. Callers surface all of them as unauthenticated.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the decoded token payload.
type Claims struct {
	Subject   string
	TokenType string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// UserID parses the numeric subject claim.
func (c Claims) UserID() (snowflake.ID, error) {
	return ParseSubject(c.Subject)
}

// ParseSubject parses a numeric subject into an ID.
func ParseSubject(subject string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(subject)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// Codec signs and verifies tokens with a symmetric secret.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	clock      clock.Clock
}

var Module = fx.Provide(NewCodec)

func NewCodec(cfg config.Config, clk clock.Clock) *Codec {
	return &Codec{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		clock:      clk,
	}
}

// IssueAccess returns a short-lived access token for the user.
func (c *Codec) IssueAccess(userID snowflake.ID) (string, error) {
	return c.issue(userID.String(), c.accessTTL, TypeAccess)
}

// IssueRefresh returns a long-lived refresh token for the user.
func (c *Codec) IssueRefresh(userID snowflake.ID) (string, error) {
	return c.issue(userID.String(), c.refreshTTL, TypeRefresh)
}

func (c *Codec) issue(subject string, ttl time.Duration, tokenType string) (string, error) {
	now := c.clock.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"iat":  jwt.NewNumericDate(now),
		"exp":  jwt.NewNumericDate(now.Add(ttl)),
		"type": tokenType,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies signature and expiry and returns the claims. Every
// failure mode collapses to ErrInvalidToken.
func (c *Codec) Decode(raw string) (Claims, error) {
	parsed, err := jwt.Parse(raw,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	subject, err := mapClaims.GetSubject()
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	tokenType, _ := mapClaims["type"].(string)

	claims := Claims{Subject: subject, TokenType: tokenType}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}
