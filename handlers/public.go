package handlers

import (
	"net/http"
	"strconv"

	"food-ordering-api/cache"
	"food-ordering-api/config"
	"food-ordering-api/models"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns restaurants, optionally filtered (public)
func ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := config.DB.Model(&models.Restaurant{})

	if cuisine := c.Query("cuisine"); cuisine != "" {
		query = query.Where("cuisine LIKE ?", "%"+cuisine+"%")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if open := c.Query("open"); open == "true" {
		query = query.Where("is_open = ?", true)
	}

	if err := query.Order("rating desc, name asc").Find(&restaurants).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load restaurants"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetRestaurant returns a single restaurant with its menu
func GetRestaurant(c *gin.Context) {
	restaurantID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	items, err := loadMenu(c, restaurant.ID)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu"})
		return
	}
	restaurant.FoodItems = items
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// loadMenu reads a restaurant's full menu through the menu cache
func loadMenu(c *gin.Context, restaurantID uint) ([]models.FoodItem, error) {
	ctx := c.Request.Context()
	if items, ok := cache.Menus.GetMenu(ctx, restaurantID); ok {
		return items, nil
	}
	var items []models.FoodItem
	if err := config.DB.Where("restaurant_id = ?", restaurantID).
		Order("category asc, name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	cache.Menus.SetMenu(ctx, restaurantID, items)
	return items, nil
}

// GetMenu returns the menu for a specific restaurant.
// Filters: ?category=, ?isVeg=true, ?available=true
func GetMenu(c *gin.Context) {
	restaurantID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	items, err := loadMenu(c, restaurant.ID)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu"})
		return
	}

	category := c.Query("category")
	vegOnly, _ := strconv.ParseBool(c.DefaultQuery("isVeg", c.Query("is_veg")))
	availableOnly, _ := strconv.ParseBool(c.Query("available"))

	menu := make([]models.FoodItem, 0, len(items))
	for _, it := range items {
		if category != "" && it.Category != category {
			continue
		}
		if vegOnly && !it.IsVeg {
			continue
		}
		if availableOnly && !it.IsAvailable {
			continue
		}
		menu = append(menu, it)
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"isOpen":     restaurant.IsOpen,
		"count":      len(menu),
		"menu":       menu,
	})
}

// GetStateMachineInfo returns the order lifecycle for clients and docs
func GetStateMachineInfo(c *gin.Context) {
	terminal := []models.OrderStatus{}
	for _, s := range models.AllOrderStatuses {
		if statemachine.IsTerminal(s) {
			terminal = append(terminal, s)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"stateMachine":   statemachine.AllTransitions(),
		"statuses":       models.AllOrderStatuses,
		"terminalStates": terminal,
		"rateableStatus": models.StatusCompleted,
		"description":    "Food ordering lifecycle. Admins may force any status.",
	})
}
