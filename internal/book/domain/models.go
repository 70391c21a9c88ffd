// Package domain contains core types for the book catalog.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Book is a catalog entry. AvailableCopies stays within
// [0, TotalCopies]; the borrow service owns that invariant.
type Book struct {
	ID              snowflake.ID `gorm:"primaryKey"`
	ISBN            string       `gorm:"column:isbn;type:varchar(20);not null;uniqueIndex"`
	Title           string       `gorm:"type:varchar(500);not null"`
	Author          string       `gorm:"type:varchar(300);not null"`
	Publisher       string       `gorm:"type:varchar(300)"`
	Genre           string       `gorm:"type:varchar(100)"`
	Description     string       `gorm:"type:text"`
	TotalCopies     int          `gorm:"column:total_copies;not null;default:1"`
	AvailableCopies int          `gorm:"column:available_copies;not null;default:1"`
	PublishedYear   *int         `gorm:"column:published_year"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Book) TableName() string { return "books" }
