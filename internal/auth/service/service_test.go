package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	apikeydomain "github.com/openshelf/openshelf/internal/apikey/domain"
	apikeyrepo "github.com/openshelf/openshelf/internal/apikey/repository"
	authdomain "github.com/openshelf/openshelf/internal/auth/domain"
	"github.com/openshelf/openshelf/internal/auth/password"
	"github.com/openshelf/openshelf/internal/clock"
	"github.com/openshelf/openshelf/internal/config"
	"github.com/openshelf/openshelf/internal/permission"
	"github.com/openshelf/openshelf/internal/token"
	userdomain "github.com/openshelf/openshelf/internal/user/domain"
	userrepo "github.com/openshelf/openshelf/internal/user/repository"
	"github.com/openshelf/openshelf/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc   authdomain.Service
	codec *token.Codec
	clk   *clock.FakeClock
	db    *gorm.DB
	node  *snowflake.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&userdomain.Role{}, &userdomain.User{}, &apikeydomain.APIKey{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	cfg := config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		APIKeyPrefix:    "lms_",
	}
	codec := token.NewCodec(cfg, clk)

	svc := New(Params{
		DB:      dbConn,
		Log:     zap.NewNop(),
		Cfg:     cfg,
		Clock:   clk,
		Codec:   codec,
		Users:   userrepo.Provide(),
		APIKeys: apikeyrepo.Provide(),
	})

	return &fixture{svc: svc, codec: codec, clk: clk, db: dbConn, node: node}
}

func (f *fixture) createUser(t *testing.T, username string, active bool) *userdomain.User {
	t.Helper()

	role := userdomain.Role{
		ID:          f.node.Generate(),
		Name:        permission.RoleMember + "-" + username,
		Permissions: "[]",
	}
	if err := f.db.Create(&role).Error; err != nil {
		t.Fatalf("failed to create role: %v", err)
	}

	hashed, err := password.Hash("pass-" + username)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := userdomain.User{
		ID:           f.node.Generate(),
		Username:     username,
		Email:        username + "@example.com",
		FullName:     username,
		PasswordHash: hashed,
		IsActive:     active,
		RoleID:       role.ID,
	}
	if err := f.db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &user
}

func (f *fixture) createAPIKey(t *testing.T, userID snowflake.ID, raw string, active bool, expiresAt *time.Time) {
	t.Helper()
	key := apikeydomain.APIKey{
		ID:        f.node.Generate(),
		UserID:    userID,
		Name:      "test",
		KeyHash:   apikeydomain.HashKey(raw),
		IsActive:  active,
		ExpiresAt: expiresAt,
	}
	if err := f.db.Create(&key).Error; err != nil {
		t.Fatalf("failed to create api key: %v", err)
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "alice", true)

	pair, err := f.svc.Login(context.Background(), authdomain.LoginRequest{Username: "alice", Password: "pass-alice"})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}

	claims, err := f.codec.Decode(pair.AccessToken)
	if err != nil {
		t.Fatalf("failed to decode access token: %v", err)
	}
	if claims.TokenType != token.TypeAccess {
		t.Fatalf("expected access token, got %s", claims.TokenType)
	}
	claims, err = f.codec.Decode(pair.RefreshToken)
	if err != nil {
		t.Fatalf("failed to decode refresh token: %v", err)
	}
	if claims.TokenType != token.TypeRefresh {
		t.Fatalf("expected refresh token, got %s", claims.TokenType)
	}
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "alice", true)
	f.createUser(t, "dormant", false)

	cases := []authdomain.LoginRequest{
		{Username: "alice", Password: "wrong"},
		{Username: "nobody", Password: "pass-alice"},
		{Username: "dormant", Password: "pass-dormant"},
	}
	for _, req := range cases {
		if _, err := f.svc.Login(context.Background(), req); err != authdomain.ErrInvalidCredentials {
			t.Fatalf("login %q: expected ErrInvalidCredentials, got %v", req.Username, err)
		}
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "alice", true)

	access, err := f.codec.IssueAccess(user.ID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := f.svc.Refresh(context.Background(), access); err != authdomain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRefreshIssuesNewPair(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "alice", true)

	refresh, err := f.codec.IssueRefresh(user.ID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	pair, err := f.svc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("failed to refresh: %v", err)
	}
	claims, err := f.codec.Decode(pair.AccessToken)
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	id, err := claims.UserID()
	if err != nil {
		t.Fatalf("failed to parse subject: %v", err)
	}
	if id != user.ID {
		t.Fatalf("expected subject %s, got %s", user.ID, id)
	}
}

func TestAuthenticateBearer(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "alice", true)

	access, err := f.codec.IssueAccess(user.ID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	got, err := f.svc.Authenticate(context.Background(), authdomain.Credentials{BearerToken: access})
	if err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, got.ID)
	}
	if got.Role == nil {
		t.Fatal("expected role to be loaded")
	}
}

func TestAuthenticateRejectsRefreshAsBearer(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "alice", true)

	refresh, err := f.codec.IssueRefresh(user.ID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := f.svc.Authenticate(context.Background(), authdomain.Credentials{BearerToken: refresh}); err != authdomain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthenticateRejectsExpiredBearer(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "alice", true)

	access, err := f.codec.IssueAccess(user.ID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	f.clk.Advance(31 * time.Minute)

	if _, err := f.svc.Authenticate(context.Background(), authdomain.Credentials{BearerToken: access}); err != authdomain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthenticateRejectsInactiveUser(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "dormant", false)

	access, err := f.codec.IssueAccess(user.ID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := f.svc.Authenticate(context.Background(), authdomain.Credentials{BearerToken: access}); err != authdomain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthenticateAPIKey(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "alice", true)
	f.createAPIKey(t, user.ID, "lms_valid", true, nil)

	got, err := f.svc.Authenticate(context.Background(), authdomain.Credentials{APIKey: "lms_valid"})
	if err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, got.ID)
	}
}

func TestAuthenticateAPIKeyFailures(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "alice", true)
	dormant := f.createUser(t, "dormant", false)

	expired := f.clk.Now().Add(-time.Hour)
	f.createAPIKey(t, user.ID, "lms_inactive", false, nil)
	f.createAPIKey(t, user.ID, "lms_expired", true, &expired)
	f.createAPIKey(t, dormant.ID, "lms_orphaned", true, nil)

	cases := []string{
		"wrongprefix_abc", // rejected before lookup
		"lms_unknown",
		"lms_inactive",
		"lms_expired",
		"lms_orphaned", // owning user inactive
	}
	for _, raw := range cases {
		if _, err := f.svc.Authenticate(context.Background(), authdomain.Credentials{APIKey: raw}); err != authdomain.ErrUnauthenticated {
			t.Fatalf("key %q: expected ErrUnauthenticated, got %v", raw, err)
		}
	}
}

func TestAuthenticateNoCredentials(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.Authenticate(context.Background(), authdomain.Credentials{}); err != authdomain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestBearerTakesPriorityOverAPIKey(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice", true)
	bob := f.createUser(t, "bob", true)
	f.createAPIKey(t, bob.ID, "lms_bobkey", true, nil)

	access, err := f.codec.IssueAccess(alice.ID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	got, err := f.svc.Authenticate(context.Background(), authdomain.Credentials{
		BearerToken: access,
		APIKey:      "lms_bobkey",
	})
	if err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}
	if got.ID != alice.ID {
		t.Fatal("bearer token must win over api key")
	}
}
