package handlers

import (
	"net/http"
	"strings"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/notify"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AdminGetAllOrders returns orders with full detail, admin only.
// Filters: ?status=, ?customerId=, ?restaurantId=, paged with ?limit=&offset=
func AdminGetAllOrders(c *gin.Context) {
	limit, offset := pageParams(c)
	query := config.DB.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("order_status = ?", status)
	}
	if customerID := c.Query("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if restaurantID := c.Query("restaurantId"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	query.Count(&total)

	var orders []models.Order
	if err := query.Preload("Items").Preload("Customer").Preload("Restaurant").Preload("StatusHistory").
		Order("created_at desc").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(orders),
		"total":  total,
		"orders": orders,
		"meta":   gin.H{"limit": limit, "offset": offset},
	})
}

type ForceOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,orderstatus"`
	Reason string             `json:"reason" binding:"max=500"`
}

// AdminForceOrderStatus lets admin override any order state (emergency use)
func AdminForceOrderStatus(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ForceOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.OrderStatus == req.Status {
		c.JSON(http.StatusOK, gin.H{"message": "Order already in that status", "orderId": order.ID, "status": order.OrderStatus})
		return
	}

	prevStatus := order.OrderStatus
	note := strings.TrimSpace("[ADMIN OVERRIDE] " + req.Reason)
	if err := transitionOrder(&order, req.Status, middleware.GetUserID(c), note); err != nil {
		transitionFailed(c, err)
		return
	}
	log.Warn().Uint("order_id", order.ID).Str("from", string(prevStatus)).Str("to", string(req.Status)).
		Msg("order status forced by admin")
	// a rated order entering or leaving completed moves the restaurant average
	if order.Rating > 0 {
		if err := refreshRestaurantRating(config.DB, order.RestaurantID); err != nil {
			log.Warn().Err(err).Uint("restaurant_id", order.RestaurantID).Msg("restaurant rating refresh failed")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Order status force-updated by admin",
		"orderId":        order.ID,
		"previousStatus": prevStatus,
		"newStatus":      req.Status,
	})
}

// AdminGetAllUsers returns users, optionally by ?role= and ?status=
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at desc").Find(&users).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

type UpdateUserStatusRequest struct {
	Status models.UserStatus `json:"status" binding:"required,userstatus"`
}

// AdminUpdateUserStatus suspends or reactivates an account
func AdminUpdateUserStatus(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if userID == middleware.GetUserID(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot change your own status"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err := config.DB.Model(&user).Update("status", req.Status).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	log.Info().Uint("user_id", user.ID).Str("status", string(req.Status)).Msg("user status changed")
	c.JSON(http.StatusOK, gin.H{"message": "User status updated", "user": user.Summary()})
}

// AdminGetAllRestaurants returns all restaurants with owner and menu
func AdminGetAllRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := config.DB.Preload("Owner").Preload("FoodItems").Order("created_at desc").Find(&restaurants).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load restaurants"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

type groupCount struct {
	Label string
	Count int64
}

// AdminStats is the dashboard aggregate: orders by status, revenue, users by role, unread inbox
func AdminStats(c *gin.Context) {
	var byStatus []groupCount
	if err := config.DB.Model(&models.Order{}).
		Select("order_status AS label, COUNT(*) AS count").
		Group("order_status").Scan(&byStatus).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	orders := map[string]int64{}
	for _, s := range models.AllOrderStatuses {
		orders[string(s)] = 0
	}
	var totalOrders int64
	for _, s := range byStatus {
		orders[s.Label] = s.Count
		totalOrders += s.Count
	}

	var byRole []groupCount
	config.DB.Model(&models.User{}).Select("role AS label, COUNT(*) AS count").Group("role").Scan(&byRole)
	users := map[string]int64{}
	for _, r := range byRole {
		users[r.Label] = r.Count
	}

	// revenue of completed orders, summed in decimal
	var amounts []float64
	config.DB.Model(&models.Order{}).Where("order_status = ?", models.StatusCompleted).Pluck("total_amount", &amounts)
	revenue := decimal.Zero
	for _, a := range amounts {
		revenue = revenue.Add(decimal.NewFromFloat(a))
	}

	var unread, restaurants int64
	config.DB.Model(&models.Contact{}).Where("status = ?", models.ContactUnread).Count(&unread)
	config.DB.Model(&models.Restaurant{}).Count(&restaurants)

	c.JSON(http.StatusOK, gin.H{
		"orders":         orders,
		"totalOrders":    totalOrders,
		"revenue":        revenue.Round(2).InexactFloat64(),
		"users":          users,
		"restaurants":    restaurants,
		"unreadContacts": unread,
		"liveListeners":  notify.Default.Subscribers(),
	})
}
