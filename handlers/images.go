package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"stellar-delivery-api/config"
	"stellar-delivery-api/middleware"
	"stellar-delivery-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaxImageSize is the upload ceiling in bytes.
const MaxImageSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadImage accepts a multipart "file" field, validates MIME type and
// size, writes it under a uuid filename and records metadata keyed by a
// free-form (entity_type, entity_id) pair.
func UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	if fileHeader.Size > MaxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Max 5MB allowed."})
		return
	}

	// Sniff the content rather than trusting the client's part header.
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	head := make([]byte, 512)
	n, _ := file.Read(head)
	file.Close()
	mimeType := http.DetectContentType(head[:n])
	if !allowedImageTypes[mimeType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Allowed: image/jpeg, image/png, image/gif, image/webp"})
		return
	}

	ext := filepath.Ext(fileHeader.Filename)
	filename := uuid.New().String() + ext

	if err := os.MkdirAll(config.UploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare upload directory"})
		return
	}
	if err := c.SaveUploadedFile(fileHeader, filepath.Join(config.UploadDir, filename)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	var entityID *uint
	if raw := c.PostForm("entity_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			v := uint(id)
			entityID = &v
		}
	}

	image := models.Image{
		Filename:         filename,
		OriginalFilename: fileHeader.Filename,
		FilePath:         "/uploads/" + filename,
		FileSize:         fileHeader.Size,
		MimeType:         mimeType,
		UploadedBy:       middleware.GetUserID(c),
		EntityType:       c.PostForm("entity_type"),
		EntityID:         entityID,
	}
	if err := config.DB.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        image.ID,
		"filename":  image.Filename,
		"file_path": image.FilePath,
		"mime_type": image.MimeType,
		"file_size": image.FileSize,
	})
}

// GetImage returns one image's metadata
func GetImage(c *gin.Context) {
	var image models.Image
	if err := config.DB.First(&image, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": image})
}

// GetEntityImages lists images attached to an (entity_type, entity_id) pair
func GetEntityImages(c *gin.Context) {
	var images []models.Image
	config.DB.Where("entity_type = ? AND entity_id = ?", c.Param("type"), c.Param("id")).
		Find(&images)
	c.JSON(http.StatusOK, gin.H{"count": len(images), "images": images})
}

// DeleteImage removes an image file and its metadata; uploader or admin only
func DeleteImage(c *gin.Context) {
	var image models.Image
	if err := config.DB.First(&image, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	if image.UploadedBy != middleware.GetUserID(c) && middleware.GetRole(c) != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this image"})
		return
	}

	fullPath := filepath.Join(config.UploadDir, image.Filename)
	if _, err := os.Stat(fullPath); err == nil {
		os.Remove(fullPath)
	}
	config.DB.Delete(&image)
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}
