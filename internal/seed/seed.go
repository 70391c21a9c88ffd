// Package seed bootstraps the schema, the built-in roles and the
// initial admin account. Seeding is idempotent: rows already present
// by name are left untouched.
package seed

import (
	"context"
	"errors"
	"sort"

	"github.com/bwmarrin/snowflake"
	apikeydomain "github.com/openshelf/openshelf/internal/apikey/domain"
	"github.com/openshelf/openshelf/internal/auth/password"
	bookdomain "github.com/openshelf/openshelf/internal/book/domain"
	borrowdomain "github.com/openshelf/openshelf/internal/borrow/domain"
	"github.com/openshelf/openshelf/internal/clock"
	"github.com/openshelf/openshelf/internal/config"
	"github.com/openshelf/openshelf/internal/permission"
	userdomain "github.com/openshelf/openshelf/internal/user/domain"
	"gorm.io/gorm"
)

const (
	adminEmail    = "admin@openshelf.local"
	adminFullName = "System Administrator"
)

// Migrate creates the schema for every persisted entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userdomain.Role{},
		&userdomain.User{},
		&apikeydomain.APIKey{},
		&bookdomain.Book{},
		&borrowdomain.Borrow{},
	)
}

// Roles inserts the built-in roles that are not present yet.
func Roles(db *gorm.DB, node *snowflake.Node, clk clock.Clock) error {
	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		names := make([]string, 0, len(permission.RolePermissions()))
		for name := range permission.RolePermissions() {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			perms := permission.RolePermissions()[name]

			var existing userdomain.Role
			err := tx.First(&existing, "name = ?", name).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			now := clk.Now()
			role := userdomain.Role{
				ID:          node.Generate(),
				Name:        name,
				Description: name + " role",
				Permissions: permission.Serialize(perms),
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := tx.Create(&role).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Admin ensures a user holding the admin role exists. The bootstrap
// password comes from configuration; an empty password skips admin
// creation entirely.
func Admin(db *gorm.DB, node *snowflake.Node, clk clock.Clock, cfg config.Config) error {
	if cfg.BootstrapAdminPw == "" {
		return nil
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var adminRole userdomain.Role
		if err := tx.First(&adminRole, "name = ?", permission.RoleAdmin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("admin role missing, seed roles first")
			}
			return err
		}

		var existing userdomain.User
		err := tx.First(&existing, "username = ?", cfg.BootstrapAdmin).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := password.Hash(cfg.BootstrapAdminPw)
		if err != nil {
			return err
		}

		now := clk.Now()
		admin := userdomain.User{
			ID:           node.Generate(),
			Username:     cfg.BootstrapAdmin,
			Email:        adminEmail,
			FullName:     adminFullName,
			PasswordHash: hashed,
			IsActive:     true,
			RoleID:       adminRole.ID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return tx.Create(&admin).Error
	})
}
