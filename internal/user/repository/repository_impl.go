package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	userdomain "github.com/openshelf/openshelf/internal/user/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() userdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *userdomain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*userdomain.User, error) {
	var user userdomain.User
	err := db.WithContext(ctx).Preload("Role").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*userdomain.User, error) {
	var user userdomain.User
	err := db.WithContext(ctx).Preload("Role").First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, skip, limit int) ([]userdomain.User, error) {
	var users []userdomain.User
	err := db.WithContext(ctx).
		Preload("Role").
		Order("id asc").
		Offset(skip).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, user *userdomain.User) error {
	return db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"username":      user.Username,
			"email":         user.Email,
			"full_name":     user.FullName,
			"password_hash": user.PasswordHash,
			"is_active":     user.IsActive,
			"role_id":       user.RoleID,
			"updated_at":    user.UpdatedAt,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&userdomain.User{}, "id = ?", id).Error
}

func (r *repo) FindRoleByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*userdomain.Role, error) {
	var role userdomain.Role
	err := db.WithContext(ctx).First(&role, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *repo) FindRoleByName(ctx context.Context, db *gorm.DB, name string) (*userdomain.Role, error) {
	var role userdomain.Role
	err := db.WithContext(ctx).First(&role, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *repo) ListRoles(ctx context.Context, db *gorm.DB) ([]userdomain.Role, error) {
	var roles []userdomain.Role
	if err := db.WithContext(ctx).Order("id asc").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
