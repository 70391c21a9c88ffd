package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	apikeydomain "github.com/openshelf/openshelf/internal/apikey/domain"
	"github.com/openshelf/openshelf/internal/apikey/repository"
	"github.com/openshelf/openshelf/internal/clock"
	"github.com/openshelf/openshelf/internal/config"
	"github.com/openshelf/openshelf/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (apikeydomain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&apikeydomain.APIKey{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	svc := New(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		Cfg:   config.Config{APIKeyPrefix: "lms_"},
		Clock: clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, dbConn, node
}

func TestCreateReturnsRawKeyOnce(t *testing.T) {
	svc, dbConn, node := newTestService(t)
	userID := node.Generate()

	created, err := svc.Create(context.Background(), userID, apikeydomain.CreateRequest{Name: "ci"})
	if err != nil {
		t.Fatalf("failed to create key: %v", err)
	}
	if !strings.HasPrefix(created.APIKey, "lms_") {
		t.Fatalf("expected lms_ prefix, got %s", created.APIKey)
	}

	// Only the hash is persisted.
	var stored apikeydomain.APIKey
	if err := dbConn.First(&stored, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("failed to load key: %v", err)
	}
	if stored.KeyHash == created.APIKey {
		t.Fatal("raw key must not be stored")
	}
	if stored.KeyHash != apikeydomain.HashKey(created.APIKey) {
		t.Fatal("stored hash must match the raw key digest")
	}

	// Listing never exposes the raw value or hash.
	listed, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to list keys: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 key, got %d", len(listed))
	}
	if listed[0].Name != "ci" || !listed[0].IsActive {
		t.Fatalf("unexpected listing: %+v", listed[0])
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc, _, node := newTestService(t)

	_, err := svc.Create(context.Background(), node.Generate(), apikeydomain.CreateRequest{Name: "  "})
	if err != apikeydomain.ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestRevoke(t *testing.T) {
	svc, dbConn, node := newTestService(t)
	userID := node.Generate()

	created, err := svc.Create(context.Background(), userID, apikeydomain.CreateRequest{Name: "ci"})
	if err != nil {
		t.Fatalf("failed to create key: %v", err)
	}

	if err := svc.Revoke(context.Background(), userID, created.ID); err != nil {
		t.Fatalf("failed to revoke: %v", err)
	}

	var stored apikeydomain.APIKey
	if err := dbConn.First(&stored, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("failed to load key: %v", err)
	}
	if stored.IsActive {
		t.Fatal("expected key to be inactive")
	}
}

func TestRevokeOtherUsersKey(t *testing.T) {
	svc, _, node := newTestService(t)
	owner := node.Generate()
	intruder := node.Generate()

	created, err := svc.Create(context.Background(), owner, apikeydomain.CreateRequest{Name: "ci"})
	if err != nil {
		t.Fatalf("failed to create key: %v", err)
	}

	if err := svc.Revoke(context.Background(), intruder, created.ID); err != apikeydomain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
