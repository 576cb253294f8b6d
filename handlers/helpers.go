package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"food-ordering-api/config"
	"food-ordering-api/models"
	"food-ordering-api/notify"
	"food-ordering-api/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errStaleOrder = errors.New("order changed concurrently")

// bindError answers a failed ShouldBind with the offending fields
func bindError(c *gin.Context, err error) {
	if fields := validation.FieldErrors(err); fields != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// paramID parses a numeric path parameter, answering 400 on failure
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// transitionOrder moves the order only if nobody changed its status since it was read,
// and records the change in the status history.
func transitionOrder(order *models.Order, to models.OrderStatus, changedBy uint, note string) error {
	from := order.OrderStatus
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND order_status = ?", order.ID, from).
			Update("order_status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errStaleOrder
		}
		return tx.Create(&models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: from,
			ToStatus:   to,
			ChangedBy:  changedBy,
			Note:       note,
		}).Error
	})
	if err != nil {
		return err
	}
	order.OrderStatus = to
	notify.Default.Publish(notify.EventOrderStatus, gin.H{
		"orderId":      order.ID,
		"restaurantId": order.RestaurantID,
		"from":         from,
		"to":           to,
	})
	return nil
}

func transitionFailed(c *gin.Context, err error) {
	if errors.Is(err, errStaleOrder) {
		c.JSON(http.StatusConflict, gin.H{"error": "Order was updated by someone else, reload and retry"})
		return
	}
	c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
}
