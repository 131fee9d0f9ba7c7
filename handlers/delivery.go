package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"stellar-delivery-api/config"
	"stellar-delivery-api/middleware"
	"stellar-delivery-api/models"
	"stellar-delivery-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// errJobTaken signals that the conditional assignment update matched no row
// because another deliverer already claimed the order.
var errJobTaken = errors.New("delivery job already taken")

// DeliveryJob is the payload shown to deliverers browsing open jobs.
type DeliveryJob struct {
	OrderID         uint    `json:"order_id"`
	StoreName       string  `json:"store_name"`
	StoreAddress    string  `json:"store_address"`
	DeliveryAddress string  `json:"delivery_address"`
	Reward          int     `json:"reward"`
	Distance        float64 `json:"distance"`
}

// ListJobs shows orders ready for pickup with no delivery yet
func ListJobs(c *gin.Context) {
	var orders []models.Order
	config.DB.Preload("Store").
		Where("status = ? AND id NOT IN (?)",
			models.OrderReadyForPickup,
			config.DB.Model(&models.Delivery{}).Select("order_id")).
		Order("created_at asc").
		Find(&orders)

	jobs := make([]DeliveryJob, 0, len(orders))
	for _, order := range orders {
		job := DeliveryJob{
			OrderID:         order.ID,
			DeliveryAddress: order.DeliveryAddress,
			Reward:          models.JobReward,
			// TODO: compute from store and delivery coordinates once the
			// routing provider is chosen
			Distance: 2.5,
		}
		if order.Store != nil {
			job.StoreName = order.Store.StoreName
			job.StoreAddress = order.Store.Address
		}
		jobs = append(jobs, job)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(jobs), "jobs": jobs})
}

// AcceptJob assigns the caller to an order. Assignment is a single
// conditional UPDATE checked by rows affected, so of two concurrent
// acceptances exactly one wins.
func AcceptJob(c *gin.Context) {
	deliverer, err := delivererByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deliverer profile not found"})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("orderID")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := statemachine.CanTransitionOrder(order.Status, models.OrderDelivering, "deliverer"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Order not ready for delivery",
			"current_status": order.Status,
			"reason":         err.Error(),
		})
		return
	}

	var delivery models.Delivery
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.OrderReadyForPickup).
			Update("status", models.OrderDelivering)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errJobTaken
		}

		delivery = models.Delivery{
			OrderID:     order.ID,
			DelivererID: deliverer.ID,
			Status:      models.DeliveryAssigned,
		}
		if err := tx.Create(&delivery).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: models.OrderReadyForPickup,
			ToStatus:   models.OrderDelivering,
			ChangedBy:  middleware.GetUserID(c),
			Note:       "Delivery job accepted",
		}).Error; err != nil {
			return err
		}
		return tx.Model(deliverer).Update("work_status", models.WorkBusy).Error
	})
	if errors.Is(err, errJobTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "Job has already been taken by another deliverer"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept job"})
		return
	}

	var requester models.RequesterProfile
	if config.DB.First(&requester, order.RequesterID).Error == nil {
		Notify(requester.UserID, "配達員が決定", fmt.Sprintf("注文 #%d の配達が始まります", order.ID), "delivery_assigned", &order.ID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job accepted", "delivery": delivery})
}

// MyDeliveries returns the caller's deliveries, newest first
func MyDeliveries(c *gin.Context) {
	deliverer, err := delivererByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deliverer profile not found"})
		return
	}
	var deliveries []models.Delivery
	config.DB.Preload("Locations").
		Where("deliverer_id = ?", deliverer.ID).
		Order("created_at desc").
		Find(&deliveries)
	c.JSON(http.StatusOK, gin.H{"count": len(deliveries), "deliveries": deliveries})
}

type LocationUpdateRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

// UpdateLocation appends a position row and refreshes the live position on
// both the delivery and the deliverer profile
func UpdateLocation(c *gin.Context) {
	deliverer, err := delivererByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deliverer profile not found"})
		return
	}

	var delivery models.Delivery
	if err := config.DB.Where("id = ? AND deliverer_id = ?", c.Param("id"), deliverer.ID).
		First(&delivery).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery not found"})
		return
	}

	var req LocationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config.DB.Create(&models.DeliveryLocation{
		DeliveryID: delivery.ID,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		RecordedAt: time.Now(),
	})
	config.DB.Model(&delivery).Updates(map[string]interface{}{
		"current_lat": req.Latitude,
		"current_lng": req.Longitude,
	})
	config.DB.Model(deliverer).Updates(map[string]interface{}{
		"current_lat": req.Latitude,
		"current_lng": req.Longitude,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Location updated"})
}

type DeliveryStatusRequest struct {
	Status models.DeliveryStatus `json:"status" binding:"required"`
}

// UpdateDeliveryStatus moves a delivery through its state machine. Reaching
// completed cascades: order completed, deliverer back online, sale and
// payment bookkeeping, notifications.
func UpdateDeliveryStatus(c *gin.Context) {
	deliverer, err := delivererByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deliverer profile not found"})
		return
	}

	var delivery models.Delivery
	if err := config.DB.Where("id = ? AND deliverer_id = ?", c.Param("id"), deliverer.ID).
		First(&delivery).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery not found"})
		return
	}

	var req DeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := statemachine.CanTransitionDelivery(delivery.Status, req.Status); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Invalid state transition",
			"current_status": delivery.Status,
			"requested":      req.Status,
			"reason":         err.Error(),
		})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{"status": req.Status}
	switch req.Status {
	case models.DeliveryPickedUp:
		updates["pickup_time"] = now
	case models.DeliveryCompleted:
		updates["delivered_at"] = now
	}
	config.DB.Model(&delivery).Updates(updates)

	if req.Status == models.DeliveryCompleted {
		completeDelivery(&delivery, deliverer, middleware.GetUserID(c))
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Delivery status updated",
		"delivery": delivery.ID,
		"status":   req.Status,
	})
}

// completeDelivery cascades a finished delivery onto the order, the
// deliverer and the bookkeeping rows.
func completeDelivery(delivery *models.Delivery, deliverer *models.DelivererProfile, changedBy uint) {
	var order models.Order
	if err := config.DB.First(&order, delivery.OrderID).Error; err != nil {
		return
	}

	applyOrderStatus(&order, models.OrderCompleted, changedBy, "Delivery completed")
	config.DB.Model(deliverer).Update("work_status", models.WorkOnline)

	config.DB.Create(&models.Sale{
		StoreID:    order.StoreID,
		OrderID:    order.ID,
		Amount:     order.Subtotal,
		RecordedOn: time.Now(),
	})

	var payment models.Payment
	if err := config.DB.Where("order_id = ?", order.ID).First(&payment).Error; err == nil {
		now := time.Now()
		config.DB.Model(&payment).Updates(map[string]interface{}{
			"status":  models.PaymentPaid,
			"paid_at": now,
		})
	}

	var requester models.RequesterProfile
	if config.DB.First(&requester, order.RequesterID).Error == nil {
		Notify(requester.UserID, "配達完了", fmt.Sprintf("注文 #%d が届きました", order.ID), "delivery_completed", &order.ID)
	}
	var store models.StoreProfile
	if config.DB.First(&store, order.StoreID).Error == nil {
		Notify(store.UserID, "配達完了", fmt.Sprintf("注文 #%d の配達が完了しました", order.ID), "delivery_completed", &order.ID)
	}
}
