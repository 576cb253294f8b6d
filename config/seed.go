package config

import (
	"errors"
	"fmt"
	"strings"

	"food-ordering-api/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrNameTooShort = errors.New("name must be at least 3 characters")
)

// MinNameLength applies to the trimmed display name.
const MinNameLength = 3

// CreateUser hashes the password and inserts a new active user.
func CreateUser(db *gorm.DB, name, email, password string, role models.UserRole) (*models.User, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < MinNameLength {
		return nil, ErrNameTooShort
	}
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       models.UserActive,
	}
	if err := db.Create(user).Error; err != nil {
		// a concurrent insert can win between the count and the create
		if isDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

// SeedAdmin creates the admin account once; an existing email is left alone.
func SeedAdmin(db *gorm.DB, name, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, errors.New("admin email and password are required")
	}
	_, err := CreateUser(db, name, email, password, models.RoleAdmin)
	if errors.Is(err, ErrEmailTaken) {
		log.Info().Str("email", email).Msg("admin already exists")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	log.Info().Str("email", email).Msg("admin seeded")
	return true, nil
}

// ResetAdmin deletes any user with the email and recreates it as admin.
func ResetAdmin(db *gorm.DB, name, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, errors.New("admin email and password are required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := db.Where("email = ?", email).Delete(&models.User{}).Error; err != nil {
		return nil, fmt.Errorf("delete admin: %w", err)
	}
	return CreateUser(db, name, email, password, models.RoleAdmin)
}

type demoRestaurant struct {
	restaurant models.Restaurant
	menu       []models.FoodItem
}

var demoData = []demoRestaurant{
	{
		restaurant: models.Restaurant{Name: "Spice Route", Cuisine: "Indian", Address: "12 Curry Lane", Description: "North Indian classics"},
		menu: []models.FoodItem{
			{Name: "Paneer Butter Masala", Price: 220, Category: "Main", IsVeg: true},
			{Name: "Chicken Biryani", Price: 260, Category: "Main"},
			{Name: "Garlic Naan", Price: 45, Category: "Bread", IsVeg: true},
		},
	},
	{
		restaurant: models.Restaurant{Name: "Slice Society", Cuisine: "Italian", Address: "4 Dough Street", Description: "Wood-fired pizza"},
		menu: []models.FoodItem{
			{Name: "Margherita", Price: 299, Category: "Pizza", IsVeg: true},
			{Name: "Pepperoni", Price: 349, Category: "Pizza"},
			{Name: "Tiramisu", Price: 180, Category: "Dessert", IsVeg: true},
		},
	},
}

// SeedDemo installs a demo owner with restaurants and menus. Safe to rerun.
func SeedDemo(db *gorm.DB) error {
	owner := models.User{}
	err := db.Where("email = ?", "owner@demo.local").First(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		created, cerr := CreateUser(db, "Demo Owner", "owner@demo.local", "owner123", models.RoleOwner)
		if cerr != nil {
			return cerr
		}
		owner = *created
	} else if err != nil {
		return fmt.Errorf("lookup demo owner: %w", err)
	}

	for _, d := range demoData {
		r := d.restaurant
		r.OwnerID = owner.ID
		r.IsOpen = true
		if err := db.Where(models.Restaurant{OwnerID: owner.ID, Name: r.Name}).FirstOrCreate(&r).Error; err != nil {
			return fmt.Errorf("seed restaurant %s: %w", r.Name, err)
		}
		for _, item := range d.menu {
			item.RestaurantID = r.ID
			item.IsAvailable = true
			if err := db.Where(models.FoodItem{RestaurantID: r.ID, Name: item.Name}).FirstOrCreate(&item).Error; err != nil {
				return fmt.Errorf("seed food item %s: %w", item.Name, err)
			}
		}
	}
	log.Info().Int("restaurants", len(demoData)).Msg("demo data seeded")
	return nil
}
