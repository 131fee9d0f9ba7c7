package handlers

import (
	"net/http"

	"stellar-delivery-api/config"
	"stellar-delivery-api/middleware"
	"stellar-delivery-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type IngredientInput struct {
	Name         string `json:"name" binding:"required"`
	Quantity     string `json:"quantity"`
	DisplayOrder int    `json:"display_order"`
}

type StepInput struct {
	StepNumber  int    `json:"step_number" binding:"required"`
	Description string `json:"description" binding:"required"`
	ImageURL    string `json:"image_url"`
}

type RecipeCreateRequest struct {
	PreparationTime *int              `json:"preparation_time"`
	Calories        *int              `json:"calories"`
	Allergens       string            `json:"allergens"`
	Ingredients     []IngredientInput `json:"ingredients"`
	Steps           []StepInput       `json:"steps"`
}

type RecipeUpdateRequest struct {
	PreparationTime *int               `json:"preparation_time"`
	Calories        *int               `json:"calories"`
	Allergens       *string            `json:"allergens"`
	Ingredients     *[]IngredientInput `json:"ingredients"`
	Steps           *[]StepInput       `json:"steps"`
}

// GetRecipe returns the recipe attached to a product (public)
func GetRecipe(c *gin.Context) {
	var recipe models.ProductRecipe
	if err := config.DB.Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order asc")
	}).Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("step_number asc")
	}).Where("product_id = ?", c.Param("productID")).First(&recipe).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// ownProduct resolves a product owned by the calling store, or fails the
// request.
func ownProduct(c *gin.Context) (*models.Product, bool) {
	store, err := storeByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store profile not found"})
		return nil, false
	}
	var product models.Product
	if err := config.DB.Where("id = ? AND store_id = ?", c.Param("productID"), store.ID).
		First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found or not owned by you"})
		return nil, false
	}
	return &product, true
}

// CreateRecipe attaches a recipe to one of the caller's products
func CreateRecipe(c *gin.Context) {
	product, ok := ownProduct(c)
	if !ok {
		return
	}

	var existing models.ProductRecipe
	if err := config.DB.Where("product_id = ?", product.ID).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipe already exists. Use PUT to update."})
		return
	}

	var req RecipeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := models.ProductRecipe{
		ProductID:       product.ID,
		PreparationTime: req.PreparationTime,
		Calories:        req.Calories,
		Allergens:       req.Allergens,
	}
	for _, ing := range req.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			Name:         ing.Name,
			Quantity:     ing.Quantity,
			DisplayOrder: ing.DisplayOrder,
		})
	}
	for _, step := range req.Steps {
		recipe.Steps = append(recipe.Steps, models.RecipeStep{
			StepNumber:  step.StepNumber,
			Description: step.Description,
			ImageURL:    step.ImageURL,
		})
	}
	if err := config.DB.Create(&recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

// UpdateRecipe patches the recipe header and, when ingredient or step lists
// are present, replaces those children wholesale
func UpdateRecipe(c *gin.Context) {
	product, ok := ownProduct(c)
	if !ok {
		return
	}

	var recipe models.ProductRecipe
	if err := config.DB.Where("product_id = ?", product.ID).First(&recipe).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found. Use POST to create."})
		return
	}

	var req RecipeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if req.PreparationTime != nil {
			updates["preparation_time"] = *req.PreparationTime
		}
		if req.Calories != nil {
			updates["calories"] = *req.Calories
		}
		if req.Allergens != nil {
			updates["allergens"] = *req.Allergens
		}
		if len(updates) > 0 {
			if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", recipe.ID).
				Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			for _, ing := range *req.Ingredients {
				if err := tx.Create(&models.RecipeIngredient{
					RecipeID:     recipe.ID,
					Name:         ing.Name,
					Quantity:     ing.Quantity,
					DisplayOrder: ing.DisplayOrder,
				}).Error; err != nil {
					return err
				}
			}
		}

		if req.Steps != nil {
			if err := tx.Where("recipe_id = ?", recipe.ID).
				Delete(&models.RecipeStep{}).Error; err != nil {
				return err
			}
			for _, step := range *req.Steps {
				if err := tx.Create(&models.RecipeStep{
					RecipeID:    recipe.ID,
					StepNumber:  step.StepNumber,
					Description: step.Description,
					ImageURL:    step.ImageURL,
				}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	config.DB.Preload("Ingredients").Preload("Steps").First(&recipe, recipe.ID)
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// DeleteRecipe removes a product's recipe together with its children
func DeleteRecipe(c *gin.Context) {
	product, ok := ownProduct(c)
	if !ok {
		return
	}

	var recipe models.ProductRecipe
	if err := config.DB.Where("product_id = ?", product.ID).First(&recipe).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	config.DB.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{})
	config.DB.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeStep{})
	config.DB.Delete(&recipe)
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}
