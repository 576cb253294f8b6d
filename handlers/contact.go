package handlers

import (
	"net/http"
	"strings"
	"time"

	"food-ordering-api/config"
	"food-ordering-api/media"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/notify"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubmitContactRequest struct {
	Message string `form:"message" json:"message" binding:"required,min=5,max=5000"`
}

// SubmitContact files a message to the support inbox. The sender name is
// taken from the caller's account.
func SubmitContact(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req SubmitContactRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	var user models.User
	if err := config.DB.First(&user, customerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	images, err := media.Default.SaveImages("contacts", uploadedImages(c))
	if err != nil {
		uploadFailed(c, err)
		return
	}

	contact := models.Contact{
		CustomerID: customerID,
		SenderName: user.Name,
		Message:    strings.TrimSpace(req.Message),
		Images:     images,
		Status:     models.ContactUnread,
	}
	if err := config.DB.Create(&contact).Error; err != nil {
		media.Default.Remove(images)
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	notify.Default.Publish(notify.EventContactCreated, contact)
	c.JSON(http.StatusCreated, gin.H{"message": "Message sent", "contact": contact})
}

// GetMyContacts lists the caller's own messages
func GetMyContacts(c *gin.Context) {
	var contacts []models.Contact
	if err := config.DB.Where("customer_id = ?", middleware.GetUserID(c)).
		Order("created_at desc").Find(&contacts).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(contacts), "contacts": contacts})
}

// AdminListContacts pages through the inbox; ?status=unread|read|all
func AdminListContacts(c *gin.Context) {
	limit, offset := pageParams(c)
	query := config.DB.Model(&models.Contact{})
	switch status := c.DefaultQuery("status", "all"); status {
	case "", "all":
	case string(models.ContactUnread), string(models.ContactRead):
		query = query.Where("status = ?", status)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of: all, unread, read"})
		return
	}

	query = query.Session(&gorm.Session{})
	var total int64
	query.Count(&total)

	var contacts []models.Contact
	if err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&contacts).Error; err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}

	var unread int64
	config.DB.Model(&models.Contact{}).Where("status = ?", models.ContactUnread).Count(&unread)

	c.JSON(http.StatusOK, gin.H{
		"count":    len(contacts),
		"total":    total,
		"unread":   unread,
		"contacts": contacts,
		"meta":     gin.H{"limit": limit, "offset": offset},
	})
}

// AdminGetContact opens one message; the first view flips it to read
func AdminGetContact(c *gin.Context) {
	contactID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var contact models.Contact
	if err := config.DB.Preload("Customer").First(&contact, contactID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	if contact.Status == models.ContactUnread {
		now := time.Now()
		res := config.DB.Model(&models.Contact{}).
			Where("id = ? AND status = ?", contact.ID, models.ContactUnread).
			Updates(map[string]interface{}{"status": models.ContactRead, "read_at": now})
		if res.Error != nil {
			c.Error(res.Error)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark message as read"})
			return
		}
		contact.Status = models.ContactRead
		if res.RowsAffected > 0 {
			contact.ReadAt = &now
			notify.Default.Publish(notify.EventContactRead, gin.H{"contactId": contact.ID})
		}
	}

	c.JSON(http.StatusOK, gin.H{"contact": contact})
}

// AdminContactFeed streams inbox and order events over a websocket
func AdminContactFeed(c *gin.Context) {
	notify.ServeWS(notify.Default)(c)
}
