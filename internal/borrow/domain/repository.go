package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, borrow *Borrow) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Borrow, error)
	List(ctx context.Context, db *gorm.DB, userID *snowflake.ID, skip, limit int) ([]Borrow, error)
	Update(ctx context.Context, db *gorm.DB, borrow *Borrow) error

	// ClaimCopy decrements a book's availability only while copies
	// remain, reporting whether a copy was claimed. The conditional
	// update is what keeps two concurrent borrows from overdrawing
	// the last copy.
	ClaimCopy(ctx context.Context, db *gorm.DB, bookID snowflake.ID) (bool, error)
	ReleaseCopy(ctx context.Context, db *gorm.DB, bookID snowflake.ID) error
}
