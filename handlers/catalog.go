package handlers

import (
	"net/http"

	"stellar-delivery-api/config"
	"stellar-delivery-api/middleware"
	"stellar-delivery-api/models"
	"stellar-delivery-api/patch"

	"github.com/gin-gonic/gin"
)

// ── Public catalog ───────────────────────────────────────────────────────────

// ListStoreProducts returns a store's available products ordered by the
// manual display-order field (public)
func ListStoreProducts(c *gin.Context) {
	var store models.StoreProfile
	if err := config.DB.First(&store, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}

	query := config.DB.Where("store_id = ? AND is_available = ?", store.ID, true)
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var products []models.Product
	query.Order("display_order asc, id asc").Find(&products)
	c.JSON(http.StatusOK, gin.H{
		"store":    store.StoreName,
		"count":    len(products),
		"products": products,
	})
}

// ListStoreCategories returns a store's categories (public)
func ListStoreCategories(c *gin.Context) {
	var categories []models.Category
	config.DB.Where("store_id = ?", c.Param("id")).
		Order("display_order asc, id asc").
		Find(&categories)
	c.JSON(http.StatusOK, gin.H{"count": len(categories), "categories": categories})
}

// ── Category management (store role) ─────────────────────────────────────────

type CategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	DisplayOrder int    `json:"display_order"`
}

// CreateCategory adds a category to the caller's store
func CreateCategory(c *gin.Context) {
	store, err := storeByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store profile not found"})
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.Category{
		StoreID:      store.ID,
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
	}
	if err := config.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": category})
}

// UpdateCategory updates a category owned by the caller's store
func UpdateCategory(c *gin.Context) {
	store, err := storeByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store profile not found"})
		return
	}

	var category models.Category
	if err := config.DB.Where("id = ? AND store_id = ?", c.Param("id"), store.ID).
		First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var req struct {
		Name         *string `json:"name"`
		DisplayOrder *int    `json:"display_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if fields := patch.Fields(&req); len(fields) > 0 {
		config.DB.Model(&category).Updates(fields)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated", "category": category})
}

// DeleteCategory removes a category; products keep a dangling category id
// cleared here to stay listable
func DeleteCategory(c *gin.Context) {
	store, err := storeByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store profile not found"})
		return
	}

	var category models.Category
	if err := config.DB.Where("id = ? AND store_id = ?", c.Param("id"), store.ID).
		First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	config.DB.Model(&models.Product{}).
		Where("category_id = ?", category.ID).
		Update("category_id", nil)
	config.DB.Delete(&category)
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// ── Product management (store role) ──────────────────────────────────────────

type CreateProductRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Price        int    `json:"price" binding:"required,gt=0"`
	Stock        int    `json:"stock"`
	CategoryID   *uint  `json:"category_id"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"display_order"`
}

// CreateProduct adds a product to the caller's store
func CreateProduct(c *gin.Context) {
	store, err := storeByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store profile not found"})
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.Where("id = ? AND store_id = ?", *req.CategoryID, store.ID).
			First(&category).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not belong to your store"})
			return
		}
	}

	product := models.Product{
		StoreID:      store.ID,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Stock:        req.Stock,
		ImageURL:     req.ImageURL,
		IsAvailable:  true,
		DisplayOrder: req.DisplayOrder,
	}
	if err := config.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": product})
}

// MyProducts lists every product of the caller's store, available or not
func MyProducts(c *gin.Context) {
	store, err := storeByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store profile not found"})
		return
	}
	var products []models.Product
	config.DB.Where("store_id = ?", store.ID).
		Order("display_order asc, id asc").
		Find(&products)
	c.JSON(http.StatusOK, gin.H{"count": len(products), "products": products})
}

type ProductPatch struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Price        *int    `json:"price"`
	Stock        *int    `json:"stock"`
	CategoryID   *uint   `json:"category_id"`
	ImageURL     *string `json:"image_url"`
	IsAvailable  *bool   `json:"is_available"`
	DisplayOrder *int    `json:"display_order"`
}

// UpdateProduct updates a product owned by the caller's store
func UpdateProduct(c *gin.Context) {
	store, err := storeByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store profile not found"})
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ? AND store_id = ?", c.Param("id"), store.ID).
		First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req ProductPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Price != nil && *req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
		return
	}
	if fields := patch.Fields(&req); len(fields) > 0 {
		config.DB.Model(&product).Updates(fields)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": product})
}

// DeleteProduct removes a catalog row. Historical order details keep their
// name and price snapshots.
func DeleteProduct(c *gin.Context) {
	store, err := storeByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store profile not found"})
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ? AND store_id = ?", c.Param("id"), store.ID).
		First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	config.DB.Delete(&product)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
