package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/bwmarrin/snowflake"
	apikeydomain "github.com/openshelf/openshelf/internal/apikey/domain"
	"github.com/openshelf/openshelf/internal/clock"
	"github.com/openshelf/openshelf/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const apiKeySecretBytes = 32

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Cfg   config.Config
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  apikeydomain.Repository
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	prefix string
	clock  clock.Clock
	genID  *snowflake.Node
	repo   apikeydomain.Repository
}

func New(p Params) apikeydomain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("apikey.service"),
		prefix: p.Cfg.APIKeyPrefix,
		clock:  p.Clock,
		genID:  p.GenID,
		repo:   p.Repo,
	}
}

// Create issues a new key. The raw value is returned to the caller
// exactly once; only its hash is stored.
func (s *Service) Create(ctx context.Context, userID snowflake.ID, req apikeydomain.CreateRequest) (*apikeydomain.SecretResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apikeydomain.ErrInvalidName
	}

	plain, hash, err := generateKey(s.prefix)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	key := &apikeydomain.APIKey{
		ID:        s.genID.Generate(),
		UserID:    userID,
		Name:      name,
		KeyHash:   hash,
		IsActive:  true,
		ExpiresAt: req.ExpiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, key); err != nil {
		return nil, err
	}

	s.log.Info("api key created",
		zap.String("key_id", key.ID.String()),
		zap.String("user_id", userID.String()),
	)

	return &apikeydomain.SecretResponse{
		ID:        key.ID,
		Name:      key.Name,
		APIKey:    plain,
		CreatedAt: key.CreatedAt,
		ExpiresAt: key.ExpiresAt,
	}, nil
}

func (s *Service) List(ctx context.Context, userID snowflake.ID) ([]apikeydomain.Response, error) {
	keys, err := s.repo.ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]apikeydomain.Response, 0, len(keys))
	for i := range keys {
		resp = append(resp, apikeydomain.Response{
			ID:        keys[i].ID,
			Name:      keys[i].Name,
			IsActive:  keys[i].IsActive,
			CreatedAt: keys[i].CreatedAt,
			ExpiresAt: keys[i].ExpiresAt,
		})
	}
	return resp, nil
}

// Revoke deactivates a key. Keys belonging to other users look the
// same as absent keys to the caller.
func (s *Service) Revoke(ctx context.Context, userID snowflake.ID, keyID snowflake.ID) error {
	key, err := s.repo.FindByID(ctx, s.db, keyID)
	if err != nil {
		return err
	}
	if key == nil || key.UserID != userID {
		return apikeydomain.ErrNotFound
	}

	key.IsActive = false
	key.UpdatedAt = s.clock.Now()
	return s.repo.Update(ctx, s.db, key)
}

func generateKey(prefix string) (string, string, error) {
	secret := make([]byte, apiKeySecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", "", err
	}

	plain := prefix + hex.EncodeToString(secret)
	return plain, apikeydomain.HashKey(plain), nil
}
