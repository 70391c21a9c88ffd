package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	borrowdomain "github.com/openshelf/openshelf/internal/borrow/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() borrowdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, borrow *borrowdomain.Borrow) error {
	return db.WithContext(ctx).Create(borrow).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*borrowdomain.Borrow, error) {
	var borrow borrowdomain.Borrow
	err := db.WithContext(ctx).First(&borrow, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &borrow, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, userID *snowflake.ID, skip, limit int) ([]borrowdomain.Borrow, error) {
	query := db.WithContext(ctx).Order("id asc").Offset(skip).Limit(limit)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var borrows []borrowdomain.Borrow
	if err := query.Find(&borrows).Error; err != nil {
		return nil, err
	}
	return borrows, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, borrow *borrowdomain.Borrow) error {
	return db.WithContext(ctx).
		Model(&borrowdomain.Borrow{}).
		Where("id = ?", borrow.ID).
		Updates(map[string]any{
			"status":      borrow.Status,
			"returned_at": borrow.ReturnedAt,
			"updated_at":  borrow.UpdatedAt,
		}).Error
}

func (r *repo) ClaimCopy(ctx context.Context, db *gorm.DB, bookID snowflake.ID) (bool, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE books
		 SET available_copies = available_copies - 1
		 WHERE id = ? AND available_copies > 0`,
		bookID,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repo) ReleaseCopy(ctx context.Context, db *gorm.DB, bookID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE books
		 SET available_copies = available_copies + 1
		 WHERE id = ?`,
		bookID,
	).Error
}
