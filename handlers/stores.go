package handlers

import (
	"net/http"
	"strconv"

	"stellar-delivery-api/config"
	"stellar-delivery-api/middleware"
	"stellar-delivery-api/models"

	"github.com/gin-gonic/gin"
)

// ListStores returns open stores (public), with optional name search
func ListStores(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	query := config.DB.Where("is_open = ?", true)
	if search := c.Query("search"); search != "" {
		query = query.Where("store_name LIKE ?", "%"+search+"%")
	}

	var stores []models.StoreProfile
	query.Offset(skip).Limit(limit).Find(&stores)
	c.JSON(http.StatusOK, gin.H{"count": len(stores), "stores": stores})
}

// GetStore returns a single store (public)
func GetStore(c *gin.Context) {
	var store models.StoreProfile
	if err := config.DB.First(&store, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"store": store})
}

// ToggleStoreOpen flips the caller's store between open and closed
func ToggleStoreOpen(c *gin.Context) {
	store, err := storeByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store profile not found"})
		return
	}
	config.DB.Model(store).Update("is_open", !store.IsOpen)
	c.JSON(http.StatusOK, gin.H{"message": "Store status updated", "is_open": !store.IsOpen})
}
