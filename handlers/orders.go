package handlers

import (
	"fmt"
	"net/http"
	"time"

	"stellar-delivery-api/config"
	"stellar-delivery-api/middleware"
	"stellar-delivery-api/models"
	"stellar-delivery-api/statemachine"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	StoreID         uint     `json:"store_id" binding:"required"`
	DeliveryAddress string   `json:"delivery_address" binding:"required"`
	DeliveryLat     *float64 `json:"delivery_lat"`
	DeliveryLng     *float64 `json:"delivery_lng"`
	Note            string   `json:"note"`
	Details         []struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required,min=1"`
	} `json:"details" binding:"required,min=1"`
}

// PlaceOrder creates a new order with snapshot detail lines (requester only).
// Header and details are written in one create so a failed line insert never
// strands a header.
func PlaceOrder(c *gin.Context) {
	requester, err := requesterByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Requester profile not found"})
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var store models.StoreProfile
	if err := config.DB.First(&store, req.StoreID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}
	if !store.IsOpen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Store is currently closed"})
		return
	}

	var details []models.OrderDetail
	subtotal := 0
	for _, line := range req.Details {
		var product models.Product
		if err := config.DB.First(&product, line.ProductID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Product %d not found", line.ProductID)})
			return
		}
		if product.StoreID != req.StoreID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not belong to this store"})
			return
		}
		if !product.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product '" + product.Name + "' is not available"})
			return
		}
		lineTotal := product.Price * line.Quantity
		subtotal += lineTotal
		details = append(details, models.OrderDetail{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    line.Quantity,
			Subtotal:    lineTotal,
		})
	}

	order := models.Order{
		RequesterID:     requester.ID,
		StoreID:         req.StoreID,
		Status:          models.OrderPending,
		Subtotal:        subtotal,
		DeliveryFee:     models.DeliveryFee,
		TotalAmount:     subtotal + models.DeliveryFee,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryLat:     req.DeliveryLat,
		DeliveryLng:     req.DeliveryLng,
		Note:            req.Note,
		Details:         details,
	}
	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	config.DB.Create(&models.OrderStatusHistory{
		OrderID:   order.ID,
		ToStatus:  models.OrderPending,
		ChangedBy: middleware.GetUserID(c),
		Note:      "Order placed",
	})
	Notify(store.UserID, "新規注文", fmt.Sprintf("注文 #%d が入りました", order.ID), "order_created", &order.ID)

	config.DB.Preload("Details").Preload("Store").First(&order, order.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// MyOrders returns all orders for the logged-in requester
func MyOrders(c *gin.Context) {
	requester, err := requesterByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Requester profile not found"})
		return
	}
	var orders []models.Order
	config.DB.Preload("Details").Preload("Store").Preload("Delivery").
		Where("requester_id = ?", requester.ID).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrder returns one of the requester's orders with full detail
func GetOrder(c *gin.Context) {
	requester, err := requesterByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Requester profile not found"})
		return
	}

	var order models.Order
	if err := config.DB.
		Preload("Details").
		Preload("Store").
		Preload("Delivery").
		Preload("Payment").
		Preload("StatusHistory").
		First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.RequesterID != requester.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder cancels one of the requester's orders when the state machine
// allows it
func CancelOrder(c *gin.Context) {
	requester, err := requesterByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Requester profile not found"})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.RequesterID != requester.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	if err := statemachine.CanTransitionOrder(order.Status, models.OrderCancelled, "requester"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Cannot cancel order",
			"reason":         err.Error(),
			"current_status": order.Status,
		})
		return
	}

	applyOrderStatus(&order, models.OrderCancelled, middleware.GetUserID(c), "Order cancelled by requester")

	var store models.StoreProfile
	if config.DB.First(&store, order.StoreID).Error == nil {
		Notify(store.UserID, "注文キャンセル", fmt.Sprintf("注文 #%d がキャンセルされました", order.ID), "order_cancelled", &order.ID)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}

// ── Store-side order management ──────────────────────────────────────────────

// StoreOrders returns all orders for the caller's store, newest first, with
// a per-status summary
func StoreOrders(c *gin.Context) {
	store, err := storeByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store profile not found"})
		return
	}

	query := config.DB.Preload("Details").Preload("Requester").
		Where("store_id = ?", store.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	query.Order("created_at desc").Find(&orders)

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"store":         store.StoreName,
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateOrderStatus handles the store's state transitions for its own orders
func UpdateOrderStatus(c *gin.Context) {
	store, err := storeByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store profile not found"})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.StoreID != store.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your store"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := statemachine.CanTransitionOrder(order.Status, req.Status, "store"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         req.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.OrderTransitionsFrom(order.Status),
		})
		return
	}

	prev := order.Status
	applyOrderStatus(&order, req.Status, middleware.GetUserID(c), req.Note)

	var requester models.RequesterProfile
	if config.DB.First(&requester, order.RequesterID).Error == nil {
		Notify(requester.UserID, "注文状況の更新",
			fmt.Sprintf("注文 #%d: %s", order.ID, req.Status), "order_status", &order.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": string(prev),
		"current_status":  string(req.Status),
	})
}

// applyOrderStatus persists a validated status change, stamps the matching
// lifecycle timestamp and appends a history row.
func applyOrderStatus(order *models.Order, to models.OrderStatus, changedBy uint, note string) {
	now := time.Now()
	updates := map[string]interface{}{"status": to}
	switch to {
	case models.OrderAccepted:
		updates["accepted_at"] = now
	case models.OrderCompleted:
		updates["completed_at"] = now
	case models.OrderCancelled:
		updates["cancelled_at"] = now
	}

	prev := order.Status
	config.DB.Model(order).Updates(updates)
	config.DB.Create(&models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prev,
		ToStatus:   to,
		ChangedBy:  changedBy,
		Note:       note,
	})
}
