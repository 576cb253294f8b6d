package handlers

import (
	"net/http"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

// Restaurants run their own delivery. These are the owner's shortcuts for the
// last two hops of the lifecycle.

// GetDeliveryQueue shows the owner's orders that are ready to leave or on the road
func GetDeliveryQueue(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var orders []models.Order
	if err := config.DB.Preload("Items").Preload("Customer").Preload("Restaurant").
		Joins("JOIN restaurants ON restaurants.id = orders.restaurant_id").
		Where("restaurants.owner_id = ? AND orders.order_status IN ?", ownerID,
			[]models.OrderStatus{models.StatusPreparing, models.StatusOutForDelivery}).
		Order("orders.created_at asc").
		Find(&orders).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load deliveries"})
		return
	}

	ready := []models.Order{}
	onTheRoad := []models.Order{}
	for _, o := range orders {
		if o.OrderStatus == models.StatusPreparing {
			ready = append(ready, o)
		} else {
			onTheRoad = append(onTheRoad, o)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"count":           len(orders),
		"readyToDispatch": ready,
		"outForDelivery":  onTheRoad,
	})
}

// DispatchOrder transitions preparing → out_for_delivery
func DispatchOrder(c *gin.Context) {
	order, ok := ownedOrder(c)
	if !ok {
		return
	}
	ownerTransition(c, order, models.StatusOutForDelivery, "Order left the restaurant")
}

// CompleteOrder transitions out_for_delivery → completed, which opens the order for rating
func CompleteOrder(c *gin.Context) {
	order, ok := ownedOrder(c)
	if !ok {
		return
	}
	ownerTransition(c, order, models.StatusCompleted, "Order delivered to customer")
}
