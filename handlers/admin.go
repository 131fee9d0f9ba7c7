package handlers

import (
	"net/http"

	"stellar-delivery-api/config"
	"stellar-delivery-api/middleware"
	"stellar-delivery-api/models"

	"github.com/gin-gonic/gin"
)

// AdminGetAllOrders returns all orders with full detail
func AdminGetAllOrders(c *gin.Context) {
	query := config.DB.Preload("Details").
		Preload("Requester").Preload("Store").Preload("Delivery").Preload("StatusHistory")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if requesterID := c.Query("requester_id"); requesterID != "" {
		query = query.Where("requester_id = ?", requesterID)
	}
	if storeID := c.Query("store_id"); storeID != "" {
		query = query.Where("store_id = ?", storeID)
	}

	var orders []models.Order
	query.Order("created_at desc").Find(&orders)

	summary := map[string]int{}
	totalRevenue := 0
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.OrderCompleted {
			totalRevenue += o.TotalAmount
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

// AdminGetAllUsers returns all users, optionally filtered by role
func AdminGetAllUsers(c *gin.Context) {
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	var users []models.User
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminGetAllStores returns all stores with their products
func AdminGetAllStores(c *gin.Context) {
	var stores []models.StoreProfile
	config.DB.Preload("Products").Find(&stores)
	c.JSON(http.StatusOK, gin.H{"count": len(stores), "stores": stores})
}

// AdminSetUserActive soft-disables or re-enables an account
func AdminSetUserActive(c *gin.Context) {
	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	config.DB.Model(&user).Update("is_active", *req.IsActive)
	c.JSON(http.StatusOK, gin.H{"message": "User updated", "user_id": user.ID, "is_active": *req.IsActive})
}

// AdminForceOrderStatus lets admin override any order state (emergency use);
// it bypasses the transition table but still records history
func AdminForceOrderStatus(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
		Reason string             `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	prev := order.Status
	applyOrderStatus(&order, req.Status, middleware.GetUserID(c), "[ADMIN OVERRIDE] "+req.Reason)

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status force-updated by admin",
		"order_id":        order.ID,
		"previous_status": prev,
		"new_status":      req.Status,
	})
}
