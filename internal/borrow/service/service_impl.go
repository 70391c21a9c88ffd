package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	bookdomain "github.com/openshelf/openshelf/internal/book/domain"
	borrowdomain "github.com/openshelf/openshelf/internal/borrow/domain"
	"github.com/openshelf/openshelf/internal/clock"
	userdomain "github.com/openshelf/openshelf/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultBorrowDays = 14
	defaultListLimit  = 100
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  borrowdomain.Repository
	Books bookdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	repo  borrowdomain.Repository
	books bookdomain.Repository
}

func New(p Params) borrowdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("borrow.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
		books: p.Books,
	}
}

// Borrow claims one copy of a book and records the loan. The claim
// and the insert commit together or not at all.
func (s *Service) Borrow(ctx context.Context, actor *userdomain.User, req borrowdomain.BorrowRequest) (*borrowdomain.Borrow, error) {
	days := req.Days
	if days == 0 {
		days = defaultBorrowDays
	}
	if days < 0 {
		return nil, borrowdomain.ErrInvalidDays
	}

	// Members can never borrow on another user's behalf.
	ownerID := actor.ID
	if !actor.IsMember() && req.UserID != 0 {
		ownerID = req.UserID
	}

	book, err := s.books.FindByID(ctx, s.db, req.BookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, borrowdomain.ErrBookNotFound
	}

	now := s.clock.Now()
	borrow := &borrowdomain.Borrow{
		ID:         s.genID.Generate(),
		UserID:     ownerID,
		BookID:     req.BookID,
		Status:     borrowdomain.StatusActive,
		BorrowedAt: now,
		DueDate:    now.Add(time.Duration(days) * 24 * time.Hour),
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claimed, err := s.repo.ClaimCopy(ctx, tx, req.BookID)
		if err != nil {
			return err
		}
		if !claimed {
			return borrowdomain.ErrNoCopiesAvailable
		}
		return s.repo.Insert(ctx, tx, borrow)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("book borrowed",
		zap.String("borrow_id", borrow.ID.String()),
		zap.String("book_id", req.BookID.String()),
		zap.String("user_id", ownerID.String()),
	)
	return borrow, nil
}

// Return transitions a borrow to returned and releases its copy.
// Returning an already-returned borrow is a no-op, not an error.
func (s *Service) Return(ctx context.Context, actor *userdomain.User, borrowID snowflake.ID) (*borrowdomain.Borrow, error) {
	borrow, err := s.repo.FindByID(ctx, s.db, borrowID)
	if err != nil {
		return nil, err
	}
	if borrow == nil {
		return nil, borrowdomain.ErrNotFound
	}

	if actor.IsMember() && borrow.UserID != actor.ID {
		return nil, borrowdomain.ErrForbidden
	}

	if borrow.Returned() {
		return borrow, nil
	}

	now := s.clock.Now()
	borrow.Status = borrowdomain.StatusReturned
	borrow.ReturnedAt = &now
	borrow.UpdatedAt = now

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, borrow); err != nil {
			return err
		}
		return s.repo.ReleaseCopy(ctx, tx, borrow.BookID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("book returned",
		zap.String("borrow_id", borrow.ID.String()),
		zap.String("book_id", borrow.BookID.String()),
	)
	return borrow, nil
}

// List returns borrows ordered by id. Members only ever see their
// own.
func (s *Service) List(ctx context.Context, actor *userdomain.User, skip, limit int) ([]borrowdomain.Borrow, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	var owner *snowflake.ID
	if actor.IsMember() {
		owner = &actor.ID
	}
	return s.repo.List(ctx, s.db, owner, skip, limit)
}
