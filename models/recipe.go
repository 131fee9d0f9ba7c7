package models

import "time"

type ProductRecipe struct {
	ID              uint               `json:"id" gorm:"primaryKey"`
	ProductID       uint               `json:"product_id" gorm:"uniqueIndex;not null"`
	PreparationTime *int               `json:"preparation_time"`
	Calories        *int               `json:"calories"`
	Allergens       string             `json:"allergens"`
	Ingredients     []RecipeIngredient `json:"ingredients,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Steps           []RecipeStep       `json:"steps,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type RecipeIngredient struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	RecipeID     uint   `json:"recipe_id" gorm:"not null;index"`
	Name         string `json:"name" gorm:"not null"`
	Quantity     string `json:"quantity"`
	DisplayOrder int    `json:"display_order" gorm:"default:0"`
}

type RecipeStep struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	RecipeID    uint   `json:"recipe_id" gorm:"not null;index"`
	StepNumber  int    `json:"step_number" gorm:"not null"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}
