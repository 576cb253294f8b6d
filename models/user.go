package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleOwner    UserRole = "owner"
	RoleAdmin    UserRole = "admin"
)

// UserStatus gates access to protected routes
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserSuspended UserStatus = "suspended"
)

// SelfRegisterRoles are the roles a user may pick at registration.
// Admin accounts are created by the admin scripts only.
var SelfRegisterRoles = []UserRole{RoleCustomer, RoleOwner}

type User struct {
	ID           uint       `json:"_id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Role         UserRole   `json:"role" gorm:"not null;default:'customer'"`
	Status       UserStatus `json:"status" gorm:"not null;default:'active'"`
	Address      string     `json:"address"`
	Phone        string     `json:"phone"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IsActive reports whether the account may authenticate
func (u *User) IsActive() bool {
	return u.Status == "" || u.Status == UserActive
}

// Summary is the public view returned by auth endpoints
func (u *User) Summary() map[string]interface{} {
	return map[string]interface{}{
		"_id":    u.ID,
		"name":   u.Name,
		"email":  u.Email,
		"role":   u.Role,
		"status": u.Status,
	}
}
