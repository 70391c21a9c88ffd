package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*User, error)
	List(ctx context.Context, db *gorm.DB, skip, limit int) ([]User, error)
	Update(ctx context.Context, db *gorm.DB, user *User) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	FindRoleByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Role, error)
	FindRoleByName(ctx context.Context, db *gorm.DB, name string) (*Role, error)
	ListRoles(ctx context.Context, db *gorm.DB) ([]Role, error)
}
