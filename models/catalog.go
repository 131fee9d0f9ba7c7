package models

import "time"

type Category struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	StoreID      uint      `json:"store_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	DisplayOrder int       `json:"display_order" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Product struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	StoreID    uint      `json:"store_id" gorm:"not null;index"`
	CategoryID *uint     `json:"category_id"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Name       string    `json:"name" gorm:"not null"`
	Description string   `json:"description"`
	// Prices are integer yen
	Price        int       `json:"price" gorm:"not null"`
	Stock        int       `json:"stock" gorm:"default:0"`
	ImageURL     string    `json:"image_url"`
	IsAvailable  bool      `json:"is_available" gorm:"default:true"`
	DisplayOrder int       `json:"display_order" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
