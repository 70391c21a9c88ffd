package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	bookdomain "github.com/openshelf/openshelf/internal/book/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() bookdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, book *bookdomain.Book) error {
	return db.WithContext(ctx).Create(book).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*bookdomain.Book, error) {
	var book bookdomain.Book
	err := db.WithContext(ctx).First(&book, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, skip, limit int) ([]bookdomain.Book, error) {
	var books []bookdomain.Book
	err := db.WithContext(ctx).
		Order("id asc").
		Offset(skip).
		Limit(limit).
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, book *bookdomain.Book) error {
	return db.WithContext(ctx).
		Model(&bookdomain.Book{}).
		Where("id = ?", book.ID).
		Updates(map[string]any{
			"title":            book.Title,
			"author":           book.Author,
			"publisher":        book.Publisher,
			"genre":            book.Genre,
			"description":      book.Description,
			"total_copies":     book.TotalCopies,
			"available_copies": book.AvailableCopies,
			"published_year":   book.PublishedYear,
			"updated_at":       book.UpdatedAt,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&bookdomain.Book{}, "id = ?", id).Error
}
