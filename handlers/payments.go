package handlers

import (
	"net/http"
	"time"

	"stellar-delivery-api/config"
	"stellar-delivery-api/middleware"
	"stellar-delivery-api/models"

	"github.com/gin-gonic/gin"
)

type CreatePaymentRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Method  string `json:"method" binding:"required"`
}

// CreatePayment records a payment for one of the requester's orders. The
// amount always mirrors the order total.
func CreatePayment(c *gin.Context) {
	requester, err := requesterByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Requester profile not found"})
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, req.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.RequesterID != requester.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	var existing models.Payment
	if err := config.DB.Where("order_id = ?", order.ID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Payment already exists for this order"})
		return
	}

	payment := models.Payment{
		OrderID: order.ID,
		Amount:  order.TotalAmount,
		Method:  req.Method,
		Status:  models.PaymentPending,
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// GetOrderPayment returns the payment attached to one of the requester's
// orders
func GetOrderPayment(c *gin.Context) {
	requester, err := requesterByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Requester profile not found"})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("orderID")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.RequesterID != requester.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	var payment models.Payment
	if err := config.DB.Where("order_id = ?", order.ID).First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// MyPayouts lists the caller's payouts, newest first (deliverer only)
func MyPayouts(c *gin.Context) {
	deliverer, err := delivererByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deliverer profile not found"})
		return
	}
	var payouts []models.Payout
	config.DB.Where("deliverer_id = ?", deliverer.ID).
		Order("period_end desc").
		Find(&payouts)
	c.JSON(http.StatusOK, gin.H{"count": len(payouts), "payouts": payouts})
}

// MySales lists the caller's sales rows, newest first (store only)
func MySales(c *gin.Context) {
	store, err := storeByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store profile not found"})
		return
	}

	query := config.DB.Where("store_id = ?", store.ID)
	if from := c.Query("from"); from != "" {
		query = query.Where("recorded_on >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("recorded_on <= ?", to)
	}

	var sales []models.Sale
	query.Order("recorded_on desc").Find(&sales)

	total := 0
	for _, s := range sales {
		total += s.Amount
	}
	c.JSON(http.StatusOK, gin.H{"count": len(sales), "total": total, "sales": sales})
}

type CreatePayoutRequest struct {
	DelivererID uint      `json:"deliverer_id" binding:"required"`
	Amount      int       `json:"amount" binding:"required,gt=0"`
	PeriodStart time.Time `json:"period_start" binding:"required"`
	PeriodEnd   time.Time `json:"period_end" binding:"required"`
}

// CreatePayout records a payout for a deliverer (admin only)
func CreatePayout(c *gin.Context) {
	var req CreatePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var deliverer models.DelivererProfile
	if err := config.DB.First(&deliverer, req.DelivererID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deliverer not found"})
		return
	}

	payout := models.Payout{
		DelivererID: req.DelivererID,
		Amount:      req.Amount,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Status:      "pending",
	}
	if err := config.DB.Create(&payout).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payout"})
		return
	}

	Notify(deliverer.UserID, "支払い", "新しい支払いが登録されました", "payout_created", nil)
	c.JSON(http.StatusCreated, gin.H{"payout": payout})
}
