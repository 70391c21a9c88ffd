package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	List(ctx context.Context, skip, limit int) ([]User, error)
	GetByID(ctx context.Context, id snowflake.ID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (*User, error)
	Delete(ctx context.Context, id snowflake.ID) error
	ListRoles(ctx context.Context) ([]Role, error)
}

type RegisterRequest struct {
	Username string
	Email    string
	FullName string
	Password string
}

// UpdateRequest carries optional field updates; nil means unchanged.
type UpdateRequest struct {
	Username *string
	Email    *string
	FullName *string
	Password *string
	IsActive *bool
	RoleID   *snowflake.ID
}
