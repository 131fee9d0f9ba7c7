package handlers

import (
	"stellar-delivery-api/config"
	"stellar-delivery-api/models"
)

// Role profiles are 1:1 with users; these resolve the caller's profile row.

func requesterByUser(userID uint) (*models.RequesterProfile, error) {
	var profile models.RequesterProfile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func delivererByUser(userID uint) (*models.DelivererProfile, error) {
	var profile models.DelivererProfile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func storeByUser(userID uint) (*models.StoreProfile, error) {
	var profile models.StoreProfile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
