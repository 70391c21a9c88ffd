package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	List(ctx context.Context, skip, limit int) ([]Book, error)
	Create(ctx context.Context, req CreateRequest) (*Book, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Book, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (*Book, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

type CreateRequest struct {
	ISBN          string
	Title         string
	Author        string
	Publisher     string
	Genre         string
	Description   string
	TotalCopies   int
	PublishedYear *int
}

// UpdateRequest carries optional field updates; nil means unchanged.
type UpdateRequest struct {
	Title         *string
	Author        *string
	Publisher     *string
	Genre         *string
	Description   *string
	TotalCopies   *int
	PublishedYear *int
}

var (
	ErrNotFound      = errors.New("book not found")
	ErrBookExists    = errors.New("book already exists")
	ErrInvalidISBN   = errors.New("invalid_isbn")
	ErrInvalidTitle  = errors.New("invalid_title")
	ErrInvalidAuthor = errors.New("invalid_author")
	ErrInvalidCopies = errors.New("invalid_copies")
)
