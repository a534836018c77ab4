package handler

import (
	"errors"
	"log"
	"net/http"

	"kodask_bank/internal/middleware"
	"kodask_bank/internal/service"

	"github.com/gin-gonic/gin"
)

// AccountHandler handles authenticated account queries
type AccountHandler struct {
	balanceService service.BalanceService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(s service.BalanceService) *AccountHandler {
	return &AccountHandler{balanceService: s}
}

// Helper to get the authenticated username from context
func getAuthUsername(c *gin.Context) (string, error) {
	usernameVal, exists := c.Get(middleware.AuthUserKey)
	if !exists {
		return "", errors.New("username not found in context")
	}
	username, ok := usernameVal.(string)
	if !ok {
		return "", errors.New("invalid username type in context")
	}
	return username, nil
}

func (h *AccountHandler) GetBalance(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		log.Printf("Auth context error: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	h.respondBalance(c, username)
}

// GetCustomerBalance lets bank staff look up any account's balance. The route
// sits behind the role middleware, so only managers and admins reach it.
func (h *AccountHandler) GetCustomerBalance(c *gin.Context) {
	h.respondBalance(c, c.Param("username"))
}

func (h *AccountHandler) respondBalance(c *gin.Context, username string) {
	balance, err := h.balanceService.GetBalance(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Error getting balance: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

func (h *AccountHandler) Me(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		log.Printf("Auth context error: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	role := c.GetString(middleware.AuthRoleKey)

	c.JSON(http.StatusOK, gin.H{"username": username, "role": role})
}

// RegisterAccountRoutes registers account routes behind the auth middleware.
// The per-account lookup is additionally gated to staff roles.
func (h *AccountHandler) RegisterAccountRoutes(rg *gin.RouterGroup, authMW, staffMW gin.HandlerFunc) {
	rg.GET("/balance", authMW, h.GetBalance)
	rg.GET("/me", authMW, h.Me)
	rg.GET("/accounts/:username/balance", authMW, staffMW, h.GetCustomerBalance)
}
