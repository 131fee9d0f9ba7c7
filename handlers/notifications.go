package handlers

import (
	"net/http"
	"strconv"

	"stellar-delivery-api/config"
	"stellar-delivery-api/middleware"
	"stellar-delivery-api/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Notify writes a notification row for a user. Order and delivery flows call
// this directly; failures are logged, never propagated to the caller.
func Notify(userID uint, title, message, notifType string, orderID *uint) {
	n := models.Notification{
		UserID:         userID,
		Title:          title,
		Message:        message,
		Type:           notifType,
		RelatedOrderID: orderID,
	}
	if err := config.DB.Create(&n).Error; err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("failed to create notification")
	}
}

// ListNotifications returns the caller's notifications, newest first
func ListNotifications(c *gin.Context) {
	userID := middleware.GetUserID(c)
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	var notifications []models.Notification
	config.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(skip).Limit(limit).
		Find(&notifications)
	c.JSON(http.StatusOK, gin.H{"count": len(notifications), "notifications": notifications})
}

// UnreadCount returns how many unread notifications the caller has
func UnreadCount(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var count int64
	config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count)
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// MarkNotificationRead flips the read flag on one of the caller's
// notifications
func MarkNotificationRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var notification models.Notification
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&notification).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	config.DB.Model(&notification).Update("is_read", true)
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead flips the read flag on everything unread
func MarkAllNotificationsRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

type CreateNotificationRequest struct {
	UserID         uint   `json:"user_id" binding:"required"`
	Title          string `json:"title" binding:"required"`
	Message        string `json:"message"`
	Type           string `json:"type"`
	RelatedOrderID *uint  `json:"related_order_id"`
}

// CreateNotification lets an admin push a notification to any user
func CreateNotification(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, req.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	notification := models.Notification{
		UserID:         req.UserID,
		Title:          req.Title,
		Message:        req.Message,
		Type:           req.Type,
		RelatedOrderID: req.RelatedOrderID,
	}
	if err := config.DB.Create(&notification).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"notification": notification})
}
