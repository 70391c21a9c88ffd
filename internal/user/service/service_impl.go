package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/openshelf/openshelf/internal/auth/password"
	"github.com/openshelf/openshelf/internal/clock"
	"github.com/openshelf/openshelf/internal/permission"
	userdomain "github.com/openshelf/openshelf/internal/user/domain"
	"github.com/openshelf/openshelf/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 100
	minUsernameLen   = 3
	minPasswordLen   = 8
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  userdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	repo  userdomain.Repository
}

func New(p Params) userdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("user.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

// Register creates a user holding the default member role. Role
// escalation happens only through Update by a caller allowed to
// manage roles.
func (s *Service) Register(ctx context.Context, req userdomain.RegisterRequest) (*userdomain.User, error) {
	username := strings.TrimSpace(req.Username)
	if len(username) < minUsernameLen {
		return nil, userdomain.ErrInvalidUsername
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, userdomain.ErrInvalidEmail
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, userdomain.ErrInvalidFullName
	}
	if len(req.Password) < minPasswordLen {
		return nil, userdomain.ErrInvalidPassword
	}

	memberRole, err := s.repo.FindRoleByName(ctx, s.db, permission.RoleMember)
	if err != nil {
		return nil, err
	}
	if memberRole == nil {
		return nil, userdomain.ErrMemberRoleMissing
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &userdomain.User{
		ID:           s.genID.Generate(),
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: hashed,
		IsActive:     true,
		RoleID:       memberRole.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, userdomain.ErrUserExists
		}
		return nil, err
	}

	user.Role = memberRole
	s.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]userdomain.User, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.List(ctx, s.db, skip, limit)
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*userdomain.User, error) {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userdomain.ErrNotFound
	}
	return user, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	user, err := s.repo.FindByUsername(ctx, s.db, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userdomain.ErrNotFound
	}
	return user, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req userdomain.UpdateRequest) (*userdomain.User, error) {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userdomain.ErrNotFound
	}

	if req.Username != nil {
		trimmed := strings.TrimSpace(*req.Username)
		if len(trimmed) < minUsernameLen {
			return nil, userdomain.ErrInvalidUsername
		}
		user.Username = trimmed
	}
	if req.Email != nil {
		trimmed := strings.ToLower(strings.TrimSpace(*req.Email))
		if trimmed == "" || !strings.Contains(trimmed, "@") {
			return nil, userdomain.ErrInvalidEmail
		}
		user.Email = trimmed
	}
	if req.FullName != nil {
		trimmed := strings.TrimSpace(*req.FullName)
		if trimmed == "" {
			return nil, userdomain.ErrInvalidFullName
		}
		user.FullName = trimmed
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLen {
			return nil, userdomain.ErrInvalidPassword
		}
		hashed, err := password.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.RoleID != nil {
		role, err := s.repo.FindRoleByID(ctx, s.db, *req.RoleID)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, userdomain.ErrRoleNotFound
		}
		user.RoleID = role.ID
		user.Role = role
	}

	user.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, userdomain.ErrUserExists
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes the user and, through the schema's cascade, any API
// keys it owns.
func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if user == nil {
		return userdomain.ErrNotFound
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM api_keys WHERE user_id = ?`, id).Error; err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, id)
	})
}

func (s *Service) ListRoles(ctx context.Context) ([]userdomain.Role, error) {
	return s.repo.ListRoles(ctx, s.db)
}
