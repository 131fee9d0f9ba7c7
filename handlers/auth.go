package handlers

import (
	"net/http"

	"stellar-delivery-api/config"
	"stellar-delivery-api/middleware"
	"stellar-delivery-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required"`
}

// Register creates a new user account plus an empty role profile
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: requester, deliverer, store, or admin"})
		return
	}

	// Check email uniqueness
	var existing models.User
	if result := config.DB.Where("email = ?", req.Email).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	// Placeholder profile names match the Japanese-market frontend defaults
	switch req.Role {
	case models.RoleRequester:
		config.DB.Create(&models.RequesterProfile{UserID: user.ID, Name: "新規ユーザー"})
	case models.RoleDeliverer:
		config.DB.Create(&models.DelivererProfile{UserID: user.ID, Name: "新規配達員", WorkStatus: models.WorkOffline})
	case models.RoleStore:
		config.DB.Create(&models.StoreProfile{UserID: user.ID, StoreName: "新規店舗", Address: "未設定", IsOpen: true})
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Login authenticates via form-encoded username/password and returns a JWT
func Login(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")
	if email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me returns the authenticated user record
func Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// MyProfile returns the role-shaped profile for the authenticated user
func MyProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	switch role {
	case models.RoleRequester:
		if profile, err := requesterByUser(userID); err == nil {
			c.JSON(http.StatusOK, gin.H{
				"id":           profile.ID,
				"user_id":      profile.UserID,
				"name":         profile.Name,
				"phone_number": profile.PhoneNumber,
				"role":         role,
			})
			return
		}
	case models.RoleDeliverer:
		if profile, err := delivererByUser(userID); err == nil {
			c.JSON(http.StatusOK, gin.H{
				"id":           profile.ID,
				"user_id":      profile.UserID,
				"name":         profile.Name,
				"phone_number": profile.PhoneNumber,
				"work_status":  profile.WorkStatus,
				"vehicle_type": profile.VehicleType,
				"role":         role,
			})
			return
		}
	case models.RoleStore:
		if profile, err := storeByUser(userID); err == nil {
			c.JSON(http.StatusOK, gin.H{
				"id":             profile.ID,
				"user_id":        profile.UserID,
				"store_name":     profile.StoreName,
				"address":        profile.Address,
				"phone_number":   profile.PhoneNumber,
				"business_hours": profile.BusinessHours,
				"is_open":        profile.IsOpen,
				"role":           role,
			})
			return
		}
	case models.RoleAdmin:
		c.JSON(http.StatusOK, gin.H{
			"id":      userID,
			"user_id": userID,
			"name":    "管理者",
			"role":    role,
		})
		return
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
}
