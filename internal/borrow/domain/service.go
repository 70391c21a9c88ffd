package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	userdomain "github.com/openshelf/openshelf/internal/user/domain"
)

type Service interface {
	Borrow(ctx context.Context, actor *userdomain.User, req BorrowRequest) (*Borrow, error)
	Return(ctx context.Context, actor *userdomain.User, borrowID snowflake.ID) (*Borrow, error)
	List(ctx context.Context, actor *userdomain.User, skip, limit int) ([]Borrow, error)
}

type BorrowRequest struct {
	BookID snowflake.ID
	// UserID names the borrow owner. Member actors always borrow for
	// themselves; the field is ignored for them. Zero means the actor.
	UserID snowflake.ID
	Days   int
	Notes  string
}

var (
	ErrNotFound          = errors.New("borrow not found")
	ErrBookNotFound      = errors.New("book not found")
	ErrNoCopiesAvailable = errors.New("no copies available")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidDays       = errors.New("invalid_days")
)
