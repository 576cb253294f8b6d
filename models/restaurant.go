package models

import "time"

type Restaurant struct {
	ID          uint       `json:"_id" gorm:"primaryKey"`
	OwnerID     uint       `json:"ownerId" gorm:"not null;index"`
	Owner       *User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name        string     `json:"name" gorm:"not null"`
	Cuisine     string     `json:"cuisine"`
	Address     string     `json:"address"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl"`
	IsOpen      bool       `json:"isOpen" gorm:"default:true"`
	Rating      float64    `json:"rating" gorm:"default:0"`
	RatingCount int        `json:"ratingCount" gorm:"default:0"`
	FoodItems   []FoodItem `json:"foodItems,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// FoodItem is one entry of a restaurant's menu
type FoodItem struct {
	ID           uint      `json:"_id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurantId" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        float64   `json:"price" gorm:"not null"`
	Category     string    `json:"category"`
	IsAvailable  bool      `json:"isAvailable" gorm:"default:true"`
	IsVeg        bool      `json:"isVeg" gorm:"default:false"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
