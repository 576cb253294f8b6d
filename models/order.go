package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "placed"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusCompleted      OrderStatus = "completed"
	StatusCancelled      OrderStatus = "cancelled"
)

// AllOrderStatuses in lifecycle order
var AllOrderStatuses = []OrderStatus{
	StatusPlaced,
	StatusConfirmed,
	StatusPreparing,
	StatusOutForDelivery,
	StatusCompleted,
	StatusCancelled,
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentOnline PaymentMethod = "online"
)

var AllPaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentOnline}

type Order struct {
	ID              uint                 `json:"_id" gorm:"primaryKey"`
	CustomerID      uint                 `json:"customerId" gorm:"not null;index"`
	Customer        *User                `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	RestaurantID    uint                 `json:"restaurantId" gorm:"not null;index"`
	Restaurant      *Restaurant          `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Items           []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	TotalAmount     float64              `json:"totalAmount"`
	PaymentMethod   PaymentMethod        `json:"paymentMethod" gorm:"not null;default:'cash'"`
	DeliveryAddress string               `json:"deliveryAddress" gorm:"not null"`
	Notes           string               `json:"notes"`
	OrderStatus     OrderStatus          `json:"orderStatus" gorm:"not null;default:'placed';index"`
	Rating          int                  `json:"rating" gorm:"default:0"` // 0 = not rated yet
	Review          string               `json:"review"`
	RatingImages    []string             `json:"ratingImages" gorm:"serializer:json"`
	RatedAt         *time.Time           `json:"ratedAt,omitempty"`
	StatusHistory   []OrderStatusHistory `json:"statusHistory,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// IsRated reports whether the one-time rating has been attached
func (o *Order) IsRated() bool {
	return o.Rating > 0
}

type OrderItem struct {
	ID         uint      `json:"_id" gorm:"primaryKey"`
	OrderID    uint      `json:"orderId" gorm:"not null;index"`
	FoodItemID uint      `json:"foodItemId" gorm:"not null"`
	FoodItem   *FoodItem `json:"foodItem,omitempty" gorm:"foreignKey:FoodItemID"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	Price      float64   `json:"price" gorm:"not null"` // snapshot price at time of order
	Name       string    `json:"name"`                  // snapshot name
}

// OrderStatusHistory tracks every status change
type OrderStatusHistory struct {
	ID         uint        `json:"_id" gorm:"primaryKey"`
	OrderID    uint        `json:"orderId" gorm:"not null;index"`
	FromStatus OrderStatus `json:"fromStatus"`
	ToStatus   OrderStatus `json:"toStatus" gorm:"not null"`
	ChangedBy  uint        `json:"changedBy"` // user ID who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"createdAt"`
}
