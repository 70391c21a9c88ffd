// Package domain contains core types for the borrow service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Borrow lifecycle. StatusOverdue is part of the enumeration but no
// code path assigns it; promoting past-due borrows would need a sweep
// that does not exist yet.
const (
	StatusActive   = "active"
	StatusReturned = "returned"
	StatusOverdue  = "overdue"
)

// Borrow links a user to a book copy from checkout to return.
type Borrow struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	UserID     snowflake.ID `gorm:"column:user_id;not null;index"`
	BookID     snowflake.ID `gorm:"column:book_id;not null;index"`
	Status     string       `gorm:"type:varchar(20);not null;default:'active'"`
	BorrowedAt time.Time    `gorm:"column:borrowed_at;not null"`
	DueDate    time.Time    `gorm:"column:due_date;not null"`
	ReturnedAt *time.Time   `gorm:"column:returned_at"`
	Notes      string       `gorm:"type:text"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Borrow) TableName() string { return "borrows" }

// Returned reports whether the borrow reached its terminal state.
func (b *Borrow) Returned() bool {
	return b.Status == StatusReturned || b.ReturnedAt != nil
}
