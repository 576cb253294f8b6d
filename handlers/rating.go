package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"food-ordering-api/config"
	"food-ordering-api/media"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/notify"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RateOrderRequest struct {
	OrderID uint   `form:"orderId" json:"orderId" binding:"required"`
	Rating  int    `form:"rating" json:"rating" binding:"required"`
	Review  string `form:"review" json:"review" binding:"max=2000"`
}

// uploadedImages accepts both "images" and "images[]" field names
func uploadedImages(c *gin.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	files := append([]*multipart.FileHeader{}, form.File["images"]...)
	return append(files, form.File["images[]"]...)
}

func uploadFailed(c *gin.Context, err error) {
	switch {
	case errors.Is(err, media.ErrTooManyImages),
		errors.Is(err, media.ErrUnsupportedType),
		errors.Is(err, media.ErrImageTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store images"})
	}
}

// RateOrder attaches the one-time rating, review and photos to a completed order
func RateOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req RateOrderRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := statemachine.ValidateRating(req.Rating); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": gin.H{"rating": err.Error()}})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, req.OrderID).Error; err != nil {
		if !isNotFound(err) {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	if err := statemachine.CanRate(&order); err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, statemachine.ErrAlreadyRated) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{
			"error":         "Order cannot be rated",
			"reason":        err.Error(),
			"currentStatus": order.OrderStatus,
		})
		return
	}

	images, err := media.Default.SaveImages("ratings", uploadedImages(c))
	if err != nil {
		uploadFailed(c, err)
		return
	}

	now := time.Now()
	rated := models.Order{
		Rating:       req.Rating,
		Review:       strings.TrimSpace(req.Review),
		RatingImages: images,
		RatedAt:      &now,
	}
	res := config.DB.Model(&models.Order{}).
		Where("id = ? AND order_status = ? AND rating = 0", order.ID, models.StatusCompleted).
		Updates(rated)
	if res.Error != nil {
		media.Default.Remove(images)
		c.Error(res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
		return
	}
	if res.RowsAffected == 0 {
		media.Default.Remove(images)
		c.JSON(http.StatusConflict, gin.H{"error": "Order cannot be rated", "reason": statemachine.ErrAlreadyRated.Error()})
		return
	}

	if err := refreshRestaurantRating(config.DB, order.RestaurantID); err != nil {
		log.Warn().Err(err).Uint("restaurant_id", order.RestaurantID).Msg("restaurant rating refresh failed")
	}

	order.Rating, order.Review, order.RatingImages, order.RatedAt = rated.Rating, rated.Review, rated.RatingImages, rated.RatedAt
	var reloaded models.Order
	if err := config.DB.Preload("Items").First(&reloaded, order.ID).Error; err != nil {
		log.Warn().Err(err).Uint("order_id", order.ID).Msg("reload rated order failed")
	} else {
		order = reloaded
	}
	notify.Default.Publish(notify.EventOrderRated, gin.H{
		"orderId":      order.ID,
		"restaurantId": order.RestaurantID,
		"rating":       order.Rating,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Thanks for rating your order", "order": order})
}

// refreshRestaurantRating recomputes the average from rated orders that are still completed
func refreshRestaurantRating(db *gorm.DB, restaurantID uint) error {
	var agg struct {
		Avg   float64
		Count int
	}
	if err := db.Model(&models.Order{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("restaurant_id = ? AND rating > 0 AND order_status = ?", restaurantID, models.StatusCompleted).
		Scan(&agg).Error; err != nil {
		return err
	}
	return db.Model(&models.Restaurant{}).Where("id = ?", restaurantID).
		Updates(map[string]interface{}{"rating": agg.Avg, "rating_count": agg.Count}).Error
}

// GetRestaurantReviews lists the ratings customers left for a restaurant (public)
func GetRestaurantReviews(c *gin.Context) {
	restaurantID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	limit, offset := pageParams(c)
	var orders []models.Order
	if err := config.DB.Preload("Customer").
		Where("restaurant_id = ? AND rating > 0 AND order_status = ?", restaurantID, models.StatusCompleted).
		Order("rated_at desc").
		Limit(limit).Offset(offset).
		Find(&orders).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reviews"})
		return
	}

	reviews := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		name := ""
		if o.Customer != nil {
			name = o.Customer.Name
		}
		reviews = append(reviews, gin.H{
			"orderId":      o.ID,
			"customerName": name,
			"rating":       o.Rating,
			"review":       o.Review,
			"ratingImages": o.RatingImages,
			"ratedAt":      o.RatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant":  restaurant.Name,
		"rating":      restaurant.Rating,
		"ratingCount": restaurant.RatingCount,
		"reviews":     reviews,
		"meta":        gin.H{"limit": limit, "offset": offset},
	})
}
