// Package domain contains core types for the user service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/openshelf/openshelf/internal/permission"
)

// Role is a named permission set shared by many users. Permissions is
// a serialized JSON list of permission identifier strings; parsing
// happens at the authorization boundary.
type Role struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	Name        string       `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string       `gorm:"type:varchar(255)"`
	Permissions string       `gorm:"type:text;not null;default:'[]'"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Role) TableName() string { return "roles" }

// User represents a system user account.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	Username     string       `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email        string       `gorm:"type:varchar(255);not null;uniqueIndex"`
	FullName     string       `gorm:"column:full_name;type:varchar(255);not null"`
	PasswordHash string       `gorm:"column:password_hash;type:varchar(255);not null"`
	IsActive     bool         `gorm:"column:is_active;not null;default:true"`
	RoleID       snowflake.ID `gorm:"column:role_id;not null;index"`
	Role         *Role        `gorm:"foreignKey:RoleID"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// IsMember reports whether the user holds the built-in member role.
func (u *User) IsMember() bool {
	return u.Role != nil && u.Role.Name == permission.RoleMember
}

// RoleName returns the user's role name, empty when unassigned.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
