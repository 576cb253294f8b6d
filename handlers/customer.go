package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type UpdateProfileRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=3,max=80"`
	Address *string `json:"address" binding:"omitempty,max=300"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
}

// UpdateProfile changes the caller's contact details
func UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	update := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len([]rune(name)) < config.MinNameLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": gin.H{"name": "must be at least 3 characters"}})
			return
		}
		update["name"] = name
	}
	if req.Address != nil {
		update["address"] = strings.TrimSpace(*req.Address)
	}
	if req.Phone != nil {
		update["phone"] = strings.TrimSpace(*req.Phone)
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err := config.DB.Model(&user).Updates(update).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	config.DB.First(&user, userID)
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
}

type OrderItemRequest struct {
	FoodItemID uint `json:"foodItemId" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1,max=50"`
}

type PlaceOrderRequest struct {
	RestaurantID    uint                 `json:"restaurantId" binding:"required"`
	Items           []OrderItemRequest   `json:"items" binding:"required,min=1,dive"`
	TotalAmount     *float64             `json:"totalAmount" binding:"omitempty,gte=0"`
	PaymentMethod   models.PaymentMethod `json:"paymentMethod" binding:"required,paymentmethod"`
	DeliveryAddress string               `json:"deliveryAddress" binding:"required,min=5,max=300"`
	Notes           string               `json:"notes" binding:"max=500"`
}

// PlaceOrder creates a new order (customer only)
func PlaceOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !restaurant.IsOpen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant is currently closed"})
		return
	}

	ids := make([]uint, 0, len(req.Items))
	for _, it := range req.Items {
		ids = append(ids, it.FoodItemID)
	}
	var menu []models.FoodItem
	if err := config.DB.Where("id IN ? AND restaurant_id = ?", ids, restaurant.ID).Find(&menu).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu"})
		return
	}
	byID := make(map[uint]models.FoodItem, len(menu))
	for _, m := range menu {
		byID[m.ID] = m
	}

	// Build order items and calculate total
	orderItems := make([]models.OrderItem, 0, len(req.Items))
	total := decimal.Zero
	for _, reqItem := range req.Items {
		food, ok := byID[reqItem.FoodItemID]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Food item %d is not on this restaurant's menu", reqItem.FoodItemID)})
			return
		}
		if !food.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Food item '" + food.Name + "' is not available"})
			return
		}
		total = total.Add(decimal.NewFromFloat(food.Price).Mul(decimal.NewFromInt(int64(reqItem.Quantity))))
		orderItems = append(orderItems, models.OrderItem{
			FoodItemID: food.ID,
			Quantity:   reqItem.Quantity,
			Price:      food.Price,
			Name:       food.Name,
		})
	}
	total = total.Round(2)

	if req.TotalAmount != nil {
		diff := decimal.NewFromFloat(*req.TotalAmount).Sub(total).Abs()
		if diff.GreaterThan(decimal.NewFromFloat(0.01)) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":          "totalAmount does not match the menu prices",
				"expectedAmount": total.InexactFloat64(),
			})
			return
		}
	}

	order := models.Order{
		CustomerID:      customerID,
		RestaurantID:    restaurant.ID,
		OrderStatus:     models.StatusPlaced,
		TotalAmount:     total.InexactFloat64(),
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		Notes:           req.Notes,
		Items:           orderItems,
		RatingImages:    []string{},
		StatusHistory: []models.OrderStatusHistory{{
			ToStatus:  models.StatusPlaced,
			ChangedBy: customerID,
			Note:      "Order placed by customer",
		}},
	}
	if err := config.DB.Create(&order).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"orderId": order.ID,
		"order":   order,
	})
}

// GetMyOrders returns all orders for the logged-in customer
func GetMyOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	query := config.DB.Preload("Items").Preload("Restaurant").
		Where("customer_id = ?", customerID)
	if status := c.Query("status"); status != "" {
		query = query.Where("order_status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order's full detail with history
func GetOrderDetail(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.
		Preload("Items").
		Preload("Restaurant").
		Preload("StatusHistory").
		First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":          order,
		"minutesElapsed": int(time.Since(order.CreatedAt).Minutes()),
		"canRate":        statemachine.CanRate(&order) == nil,
		"nextStatuses":   statemachine.ValidTransitionsFrom(order.OrderStatus),
	})
}

// CancelOrder cancels an order (customer can cancel placed or confirmed)
func CancelOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	if err := statemachine.CanTransition(order.OrderStatus, models.StatusCancelled, statemachine.ActorCustomer); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot cancel order",
			"reason":        err.Error(),
			"currentStatus": order.OrderStatus,
		})
		return
	}
	if err := transitionOrder(&order, models.StatusCancelled, customerID, "Order cancelled by customer"); err != nil {
		transitionFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "orderId": order.ID})
}
