package handlers

import (
	"errors"
	"net/http"
	"strings"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name     string          `json:"name" binding:"required,min=3,max=80"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6,max=72"`
	Role     models.UserRole `json:"role" binding:"required,userrole"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new customer or owner account
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := config.CreateUser(config.DB, req.Name, req.Email, req.Password, req.Role)
	if errors.Is(err, config.ErrNameTooShort) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"fields": gin.H{"name": "must be at least 3 characters"},
		})
		return
	}
	if errors.Is(err, config.ErrEmailTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	log.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"user":    user.Summary(),
	})
}

// Login authenticates a user and returns a JWT
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var user models.User
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if !user.IsActive() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user.Summary(),
	})
}

// Verify confirms the bearer token still maps to an account
func Verify(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, middleware.GetUserID(c)).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetProfile returns the authenticated user's profile
func GetProfile(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, middleware.GetUserID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
