package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleRequester UserRole = "requester"
	RoleDeliverer UserRole = "deliverer"
	RoleStore     UserRole = "store"
	RoleAdmin     UserRole = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleRequester, RoleDeliverer, RoleStore, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
