package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, key *APIKey) error
	Update(ctx context.Context, db *gorm.DB, key *APIKey) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*APIKey, error)
	FindActiveByHash(ctx context.Context, db *gorm.DB, hash string) (*APIKey, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]APIKey, error)
}
