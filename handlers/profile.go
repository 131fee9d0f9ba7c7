package handlers

import (
	"net/http"

	"stellar-delivery-api/config"
	"stellar-delivery-api/middleware"
	"stellar-delivery-api/models"
	"stellar-delivery-api/patch"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ── Requester profile ────────────────────────────────────────────────────────

type RequesterProfilePatch struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phone_number"`
}

// GetRequesterProfile returns the caller's requester profile
func GetRequesterProfile(c *gin.Context) {
	profile, err := requesterByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateRequesterProfile applies only the fields present in the request body
func UpdateRequesterProfile(c *gin.Context) {
	profile, err := requesterByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var req RequesterProfilePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if fields := patch.Fields(&req); len(fields) > 0 {
		config.DB.Model(profile).Updates(fields)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "profile": profile})
}

// ── Requester addresses ──────────────────────────────────────────────────────

type AddressRequest struct {
	Label        string   `json:"label"`
	PostalCode   string   `json:"postal_code"`
	Prefecture   string   `json:"prefecture"`
	City         string   `json:"city"`
	AddressLine1 string   `json:"address_line1" binding:"required"`
	AddressLine2 string   `json:"address_line2"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	IsDefault    bool     `json:"is_default"`
}

// ListAddresses returns the caller's saved addresses
func ListAddresses(c *gin.Context) {
	profile, err := requesterByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	var addresses []models.RequesterAddress
	config.DB.Where("requester_id = ?", profile.ID).Find(&addresses)
	c.JSON(http.StatusOK, gin.H{"count": len(addresses), "addresses": addresses})
}

// AddAddress creates a new address. Marking it default clears the flag on
// every sibling row within the same transaction so exactly one default
// remains.
func AddAddress(c *gin.Context) {
	profile, err := requesterByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address := models.RequesterAddress{
		RequesterID:  profile.ID,
		Label:        req.Label,
		PostalCode:   req.PostalCode,
		Prefecture:   req.Prefecture,
		City:         req.City,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		IsDefault:    req.IsDefault,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&models.RequesterAddress{}).
				Where("requester_id = ?", profile.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(&address).Error; err != nil {
			return err
		}
		if req.IsDefault {
			return tx.Model(profile).Update("default_address_id", address.ID).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save address"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Address added", "address": address})
}

// SetDefaultAddress marks one existing address as the default
func SetDefaultAddress(c *gin.Context) {
	profile, err := requesterByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var address models.RequesterAddress
	if err := config.DB.Where("id = ? AND requester_id = ?", c.Param("id"), profile.ID).
		First(&address).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.RequesterAddress{}).
			Where("requester_id = ?", profile.ID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&address).Update("is_default", true).Error; err != nil {
			return err
		}
		return tx.Model(profile).Update("default_address_id", address.ID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update default address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Default address updated", "address_id": address.ID})
}

// DeleteAddress removes one of the caller's addresses
func DeleteAddress(c *gin.Context) {
	profile, err := requesterByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var address models.RequesterAddress
	if err := config.DB.Where("id = ? AND requester_id = ?", c.Param("id"), profile.ID).
		First(&address).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	config.DB.Delete(&address)
	if profile.DefaultAddressID != nil && *profile.DefaultAddressID == address.ID {
		config.DB.Model(profile).Update("default_address_id", nil)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}

// ── Deliverer profile ────────────────────────────────────────────────────────

type DelivererProfilePatch struct {
	Name        *string            `json:"name"`
	PhoneNumber *string            `json:"phone_number"`
	WorkStatus  *models.WorkStatus `json:"work_status"`
	VehicleType *string            `json:"vehicle_type"`
}

// GetDelivererProfile returns the caller's deliverer profile
func GetDelivererProfile(c *gin.Context) {
	profile, err := delivererByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateDelivererProfile applies only the fields present in the request body
func UpdateDelivererProfile(c *gin.Context) {
	profile, err := delivererByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var req DelivererProfilePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.WorkStatus != nil {
		switch *req.WorkStatus {
		case models.WorkOnline, models.WorkOffline, models.WorkBusy:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "work_status must be online, offline or busy"})
			return
		}
	}
	if fields := patch.Fields(&req); len(fields) > 0 {
		config.DB.Model(profile).Updates(fields)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "profile": profile})
}

type BankingRequest struct {
	BankName          string `json:"bank_name" binding:"required"`
	BankBranch        string `json:"bank_branch" binding:"required"`
	BankAccountType   string `json:"bank_account_type" binding:"required"`
	BankAccountNumber string `json:"bank_account_number" binding:"required"`
	BankAccountHolder string `json:"bank_account_holder" binding:"required"`
}

// UpdateDelivererBanking replaces the deliverer's payout banking fields
func UpdateDelivererBanking(c *gin.Context) {
	profile, err := delivererByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var req BankingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config.DB.Model(profile).Updates(map[string]interface{}{
		"bank_name":           req.BankName,
		"bank_branch":         req.BankBranch,
		"bank_account_type":   req.BankAccountType,
		"bank_account_number": req.BankAccountNumber,
		"bank_account_holder": req.BankAccountHolder,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Banking information updated"})
}

// ── Store profile ────────────────────────────────────────────────────────────

type StoreProfilePatch struct {
	StoreName     *string  `json:"store_name"`
	Address       *string  `json:"address"`
	PhoneNumber   *string  `json:"phone_number"`
	Description   *string  `json:"description"`
	BusinessHours *string  `json:"business_hours"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	IsOpen        *bool    `json:"is_open"`
}

// GetStoreProfile returns the caller's store profile
func GetStoreProfile(c *gin.Context) {
	profile, err := storeByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateStoreProfile applies only the fields present in the request body
func UpdateStoreProfile(c *gin.Context) {
	profile, err := storeByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var req StoreProfilePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if fields := patch.Fields(&req); len(fields) > 0 {
		config.DB.Model(profile).Updates(fields)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "profile": profile})
}
