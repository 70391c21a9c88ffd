// Package domain contains core types for the API key service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// APIKey stores hashed API credentials owned by a user. The raw key
// value is never persisted.
type APIKey struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	UserID    snowflake.ID `gorm:"column:user_id;not null;index"`
	Name      string       `gorm:"type:varchar(100);not null"`
	KeyHash   string       `gorm:"column:key_hash;type:varchar(64);not null;uniqueIndex"`
	IsActive  bool         `gorm:"column:is_active;not null;default:true"`
	ExpiresAt *time.Time   `gorm:"column:expires_at"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (APIKey) TableName() string { return "api_keys" }
