package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"consultorio-server/internal/config"
	"consultorio-server/internal/middleware"
	"consultorio-server/internal/models"
	"consultorio-server/internal/utils"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for a successful login.
type LoginResponse struct {
	Token string               `json:"token"`
	User  models.UserSanitized `json:"user"`
}

// Login exchanges the shared account credentials for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Unauthorized(c, "Invalid username or password")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	token, err := utils.GenerateToken(&user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Success(c, "Login successful", LoginResponse{
		Token: token,
		User:  user.Sanitize(),
	})
}

// GetProfile returns the authenticated account.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Account not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Profile fetched successfully", user.Sanitize())
}

// SeedAdmin creates the shared office account if it does not exist yet.
// Called once at startup; replaces the open register endpoint that only
// ever existed to create the first account.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", cfg.Admin.Username).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing account: %w", err)
	}
	if count > 0 {
		return nil
	}

	if cfg.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD must be set to seed the shared account")
	}

	user := models.User{
		Username: cfg.Admin.Username,
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
	}
	if err := user.SetPassword(cfg.Admin.Password); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create shared account: %w", err)
	}
	return nil
}
