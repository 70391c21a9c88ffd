package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	bookdomain "github.com/openshelf/openshelf/internal/book/domain"
	"github.com/openshelf/openshelf/internal/clock"
	"github.com/openshelf/openshelf/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultListLimit = 100

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  bookdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	repo  bookdomain.Repository
}

func New(p Params) bookdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("book.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]bookdomain.Book, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.List(ctx, s.db, skip, limit)
}

func (s *Service) Create(ctx context.Context, req bookdomain.CreateRequest) (*bookdomain.Book, error) {
	isbn := strings.TrimSpace(req.ISBN)
	if isbn == "" {
		return nil, bookdomain.ErrInvalidISBN
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, bookdomain.ErrInvalidTitle
	}
	author := strings.TrimSpace(req.Author)
	if author == "" {
		return nil, bookdomain.ErrInvalidAuthor
	}
	total := req.TotalCopies
	if total == 0 {
		total = 1
	}
	if total < 0 {
		return nil, bookdomain.ErrInvalidCopies
	}

	now := s.clock.Now()
	book := &bookdomain.Book{
		ID:              s.genID.Generate(),
		ISBN:            isbn,
		Title:           title,
		Author:          author,
		Publisher:       strings.TrimSpace(req.Publisher),
		Genre:           strings.TrimSpace(req.Genre),
		Description:     req.Description,
		TotalCopies:     total,
		AvailableCopies: total,
		PublishedYear:   req.PublishedYear,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Insert(ctx, s.db, book); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, bookdomain.ErrBookExists
		}
		return nil, err
	}
	return book, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*bookdomain.Book, error) {
	book, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, bookdomain.ErrNotFound
	}
	return book, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req bookdomain.UpdateRequest) (*bookdomain.Book, error) {
	book, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, bookdomain.ErrNotFound
	}

	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			return nil, bookdomain.ErrInvalidTitle
		}
		book.Title = trimmed
	}
	if req.Author != nil {
		trimmed := strings.TrimSpace(*req.Author)
		if trimmed == "" {
			return nil, bookdomain.ErrInvalidAuthor
		}
		book.Author = trimmed
	}
	if req.Publisher != nil {
		book.Publisher = strings.TrimSpace(*req.Publisher)
	}
	if req.Genre != nil {
		book.Genre = strings.TrimSpace(*req.Genre)
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.TotalCopies != nil {
		// Growing or shrinking the holding adjusts availability by
		// the same delta so active borrows stay accounted for.
		delta := *req.TotalCopies - book.TotalCopies
		if *req.TotalCopies < 0 || book.AvailableCopies+delta < 0 {
			return nil, bookdomain.ErrInvalidCopies
		}
		book.TotalCopies = *req.TotalCopies
		book.AvailableCopies += delta
	}
	if req.PublishedYear != nil {
		book.PublishedYear = req.PublishedYear
	}

	book.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	book, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if book == nil {
		return bookdomain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, id)
}
