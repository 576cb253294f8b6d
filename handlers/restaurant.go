package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"food-ordering-api/cache"
	"food-ordering-api/config"
	"food-ordering-api/media"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

// ── Restaurant Management ────────────────────────────────────────────────────

type CreateRestaurantRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=120"`
	Cuisine     string `json:"cuisine" binding:"max=60"`
	Address     string `json:"address" binding:"required,min=5,max=300"`
	Description string `json:"description" binding:"max=1000"`
	ImageURL    string `json:"imageUrl" binding:"omitempty,max=500"`
}

// CreateRestaurant lets an owner open a new restaurant
func CreateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	restaurant := models.Restaurant{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Cuisine:     strings.TrimSpace(req.Cuisine),
		Address:     strings.TrimSpace(req.Address),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsOpen:      true,
	}
	if err := config.DB.Create(&restaurant).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "restaurant": restaurant})
}

// GetMyRestaurants lists the restaurants owned by the logged-in user
func GetMyRestaurants(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var restaurants []models.Restaurant
	if err := config.DB.Preload("FoodItems").Where("owner_id = ?", ownerID).
		Order("created_at asc").Find(&restaurants).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load restaurants"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// ownedRestaurant loads restaurant :id and checks the caller owns it.
// Admins pass the ownership check.
func ownedRestaurant(c *gin.Context, id uint) (*models.Restaurant, bool) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return nil, false
	}
	if restaurant.OwnerID != middleware.GetUserID(c) && middleware.GetRole(c) != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this restaurant"})
		return nil, false
	}
	return &restaurant, true
}

type UpdateRestaurantRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=120"`
	Cuisine     *string `json:"cuisine" binding:"omitempty,max=60"`
	Address     *string `json:"address" binding:"omitempty,min=5,max=300"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,max=500"`
	IsOpen      *bool   `json:"isOpen"`
}

// UpdateRestaurant updates restaurant details
func UpdateRestaurant(c *gin.Context) {
	restaurantID, ok := paramID(c, "id")
	if !ok {
		return
	}
	restaurant, ok := ownedRestaurant(c, restaurantID)
	if !ok {
		return
	}

	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	// Only allow safe fields
	update := map[string]interface{}{}
	if req.Name != nil {
		update["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Cuisine != nil {
		update["cuisine"] = strings.TrimSpace(*req.Cuisine)
	}
	if req.Address != nil {
		update["address"] = strings.TrimSpace(*req.Address)
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.ImageURL != nil {
		update["image_url"] = *req.ImageURL
	}
	if req.IsOpen != nil {
		update["is_open"] = *req.IsOpen
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := config.DB.Model(restaurant).Updates(update).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
		return
	}
	config.DB.First(restaurant, restaurant.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

// UploadRestaurantImage replaces the restaurant's cover photo (multipart "image")
func UploadRestaurantImage(c *gin.Context) {
	restaurantID, ok := paramID(c, "id")
	if !ok {
		return
	}
	restaurant, ok := ownedRestaurant(c, restaurantID)
	if !ok {
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	urls, err := media.Default.SaveImages("restaurants", []*multipart.FileHeader{fh})
	if err != nil {
		uploadFailed(c, err)
		return
	}

	previous := restaurant.ImageURL
	if err := config.DB.Model(restaurant).Update("image_url", urls[0]).Error; err != nil {
		media.Default.Remove(urls)
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
		return
	}
	if strings.HasPrefix(previous, media.Default.URLPrefix+"/") {
		media.Default.Remove([]string{previous})
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image updated", "imageUrl": urls[0]})
}

// ── Menu Management ─────────────────────────────────────────────────────────

type CreateFoodItemRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=120"`
	Description string  `json:"description" binding:"max=1000"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"max=60"`
	IsVeg       bool    `json:"isVeg"`
	IsAvailable *bool   `json:"isAvailable"`
}

// AddFoodItem adds a new item to a restaurant's menu
func AddFoodItem(c *gin.Context) {
	restaurantID, ok := paramID(c, "id")
	if !ok {
		return
	}
	restaurant, ok := ownedRestaurant(c, restaurantID)
	if !ok {
		return
	}

	var req CreateFoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	item := models.FoodItem{
		RestaurantID: restaurant.ID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Price:        req.Price,
		Category:     strings.TrimSpace(req.Category),
		IsVeg:        req.IsVeg,
		IsAvailable:  req.IsAvailable == nil || *req.IsAvailable,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add food item"})
		return
	}
	// gorm omits a false bool that has a column default on insert
	if req.IsAvailable != nil && !*req.IsAvailable {
		config.DB.Model(&item).Update("is_available", false)
		item.IsAvailable = false
	}
	cache.Menus.Invalidate(c.Request.Context(), restaurant.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Food item added", "item": item})
}

// ownedFoodItem loads food item :itemId and checks the caller owns its restaurant
func ownedFoodItem(c *gin.Context) (*models.FoodItem, bool) {
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return nil, false
	}
	var item models.FoodItem
	if err := config.DB.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food item not found"})
		return nil, false
	}
	if _, ok := ownedRestaurant(c, item.RestaurantID); !ok {
		return nil, false
	}
	return &item, true
}

type UpdateFoodItemRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=120"`
	Description *string  `json:"description" binding:"omitempty,max=1000"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Category    *string  `json:"category" binding:"omitempty,max=60"`
	IsVeg       *bool    `json:"isVeg"`
	IsAvailable *bool    `json:"isAvailable"`
}

// UpdateFoodItem updates a menu item (only by the owner)
func UpdateFoodItem(c *gin.Context) {
	item, ok := ownedFoodItem(c)
	if !ok {
		return
	}

	var req UpdateFoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	update := map[string]interface{}{}
	if req.Name != nil {
		update["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Price != nil {
		update["price"] = *req.Price
	}
	if req.Category != nil {
		update["category"] = strings.TrimSpace(*req.Category)
	}
	if req.IsVeg != nil {
		update["is_veg"] = *req.IsVeg
	}
	if req.IsAvailable != nil {
		update["is_available"] = *req.IsAvailable
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := config.DB.Model(item).Updates(update).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update food item"})
		return
	}
	cache.Menus.Invalidate(c.Request.Context(), item.RestaurantID)
	config.DB.First(item, item.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Food item updated", "item": item})
}

// DeleteFoodItem removes a menu item. An item that past orders point at is
// only marked unavailable so their foreign keys stay valid.
func DeleteFoodItem(c *gin.Context) {
	item, ok := ownedFoodItem(c)
	if !ok {
		return
	}

	var ordered int64
	config.DB.Model(&models.OrderItem{}).Where("food_item_id = ?", item.ID).Count(&ordered)
	if ordered > 0 {
		if err := config.DB.Model(item).Update("is_available", false).Error; err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete food item"})
			return
		}
		cache.Menus.Invalidate(c.Request.Context(), item.RestaurantID)
		c.JSON(http.StatusOK, gin.H{"message": "Food item has past orders and was marked unavailable", "itemId": item.ID})
		return
	}

	if err := config.DB.Delete(item).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete food item"})
		return
	}
	cache.Menus.Invalidate(c.Request.Context(), item.RestaurantID)
	c.JSON(http.StatusOK, gin.H{"message": "Food item deleted", "itemId": item.ID})
}
