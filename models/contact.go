package models

import "time"

type ContactStatus string

const (
	ContactUnread ContactStatus = "unread"
	ContactRead   ContactStatus = "read"
)

// Contact is a message a customer sends to the support inbox.
// The application never deletes contacts.
type Contact struct {
	ID         uint          `json:"_id" gorm:"primaryKey"`
	CustomerID uint          `json:"customerId" gorm:"not null;index"`
	Customer   *User         `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	SenderName string        `json:"senderName" gorm:"not null"`
	Message    string        `json:"message" gorm:"type:text;not null"`
	Images     []string      `json:"images" gorm:"serializer:json"`
	Status     ContactStatus `json:"status" gorm:"not null;default:'unread';index"`
	ReadAt     *time.Time    `json:"readAt,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// AllModels lists every persisted model, in dependency order
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Restaurant{},
		&FoodItem{},
		&Order{},
		&OrderItem{},
		&OrderStatusHistory{},
		&Contact{},
	}
}
