package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles.
const (
	RoleUser   = "USER"
	RoleTenant = "TENANT"
	RoleAdmin  = "ADMIN"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	FullName  string         `gorm:"size:255" json:"full_name"`
	Email     string         `gorm:"uniqueIndex;size:150" json:"email"`
	Password  string         `gorm:"size:255" json:"-"` // bcrypt hash, never serialized
	Role      string         `gorm:"size:16;default:USER" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
