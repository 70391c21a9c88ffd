package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, book *Book) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Book, error)
	List(ctx context.Context, db *gorm.DB, skip, limit int) ([]Book, error)
	Update(ctx context.Context, db *gorm.DB, book *Book) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
