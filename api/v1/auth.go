package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tracklite/dto"
	"github.com/tracklite/errs"
	"github.com/tracklite/middleware"
	"github.com/tracklite/services"
)

// AuthController handles registration and login endpoints
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// RegisterRoutes registers auth routes
func (ctl *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", ctl.Register)
		auth.POST("/login", ctl.Login)
		auth.GET("/me", middleware.AuthMiddleware(ctl.authService), ctl.GetCurrentUser)
	}
}

// Register handles user registration
func (ctl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body", "error": err.Error()})
		return
	}

	user, err := ctl.authService.Register(req)
	if err != nil {
		c.JSON(errs.StatusCode(err), gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "user": user})
}

// Login handles user authentication
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body", "error": err.Error()})
		return
	}

	response, err := ctl.authService.Login(req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Authentication failed", "error": err.Error()})
		return
	}

	// Set token as HttpOnly cookie alongside the body for Bearer clients
	c.SetCookie("access_token", response.Token, 86400, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": response})
}

// GetCurrentUser returns the authenticated user's account
func (ctl *AuthController) GetCurrentUser(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "User not authenticated"})
		return
	}

	user, err := ctl.authService.GetUser(userID.(string))
	if err != nil {
		c.JSON(errs.StatusCode(err), gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "user": user})
}
