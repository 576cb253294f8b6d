package handlers

import (
	"net/http"
	"strconv"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetRestaurantOrders returns the orders of every restaurant the owner runs.
// Filters: ?restaurantId=, ?status=
func GetRestaurantOrders(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var restaurantIDs []uint
	if err := config.DB.Model(&models.Restaurant{}).Where("owner_id = ?", ownerID).
		Pluck("id", &restaurantIDs).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load restaurants"})
		return
	}
	if len(restaurantIDs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	query := config.DB.Preload("Items").Preload("Customer").Preload("Restaurant").
		Where("restaurant_id IN ?", restaurantIDs)

	if raw := c.Query("restaurantId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || !containsID(restaurantIDs, uint(id)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this restaurant"})
			return
		}
		query = query.Where("restaurant_id = ?", id)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("order_status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	// dashboard summary
	summary := map[models.OrderStatus]int{}
	for _, o := range orders {
		summary[o.OrderStatus]++
	}

	c.JSON(http.StatusOK, gin.H{
		"orderSummary": summary,
		"count":        len(orders),
		"orders":       orders,
	})
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ownedOrder loads order :id and checks it belongs to one of the caller's restaurants
func ownedOrder(c *gin.Context) (*models.Order, bool) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	var order models.Order
	if err := config.DB.Preload("Restaurant").First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return nil, false
	}
	if order.Restaurant == nil || order.Restaurant.OwnerID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your restaurant"})
		return nil, false
	}
	return &order, true
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,orderstatus"`
	Note   string             `json:"note" binding:"max=500"`
}

// UpdateOrderStatus handles the owner's lifecycle transitions
func UpdateOrderStatus(c *gin.Context) {
	order, ok := ownedOrder(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	ownerTransition(c, order, req.Status, req.Note)
}

// ownerTransition checks and applies an owner-driven status change and answers the request
func ownerTransition(c *gin.Context, order *models.Order, to models.OrderStatus, note string) {
	if err := statemachine.CanTransition(order.OrderStatus, to, statemachine.ActorOwner); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":           "Invalid state transition",
			"currentStatus":   order.OrderStatus,
			"requested":       to,
			"reason":          err.Error(),
			"validNextStates": statemachine.ValidTransitionsFrom(order.OrderStatus),
		})
		return
	}

	prevStatus := order.OrderStatus
	if note == "" {
		note = "Updated by restaurant"
	}
	if err := transitionOrder(order, to, middleware.GetUserID(c), note); err != nil {
		transitionFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Order status updated",
		"orderId":        order.ID,
		"previousStatus": prevStatus,
		"currentStatus":  order.OrderStatus,
	})
}
