package handler

import (
	"errors"
	"log"
	"net/http"

	"kodask_bank/internal/middleware"
	"kodask_bank/internal/model"
	"kodask_bank/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and logout requests
type AuthHandler struct {
	service      service.AuthService
	cookieMaxAge int
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler. cookieMaxAge is the session
// cookie lifetime in seconds and should match the token validity window.
func NewAuthHandler(s service.AuthService, cookieMaxAge int, cookieSecure bool) *AuthHandler {
	return &AuthHandler{service: s, cookieMaxAge: cookieMaxAge, cookieSecure: cookieSecure}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	uid, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists"})
			return
		}
		log.Printf("Error during registration: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"uid":     uid,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	token, role, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		log.Printf("Error during login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.SetCookie(middleware.AuthCookieName, token, h.cookieMaxAge, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"role":    role,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
}
